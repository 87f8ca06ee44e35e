package store

import (
	"gorm.io/gorm"
)

// BaseQuerier collects composable query fragments for the List operations.
type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}
