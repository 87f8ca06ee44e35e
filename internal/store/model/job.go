package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Qualifications is the structured requirement block of a posting.
// Experience sub-fields are either year counts or boolean flags, so the
// values stay untyped.
type Qualifications struct {
	Education  string         `json:"education"`
	Experience map[string]any `json:"experience"`
	TotalYears int            `json:"totalYears"`
}

// JobPosting is read-only input to the review pipeline. Postings are created
// through the ingestion endpoint and never mutated afterwards.
type JobPosting struct {
	ID                uuid.UUID                            `gorm:"primaryKey" json:"id"`
	Title             string                               `gorm:"not null" json:"title"`
	Department        string                               `json:"department"`
	Summary           string                               `json:"summary"`
	Duties            datatypes.JSONSlice[string]          `json:"duties"`
	Qualifications    datatypes.JSONType[Qualifications]   `json:"qualifications"`
	Substitutions     datatypes.JSONSlice[string]          `json:"substitutions,omitempty"`
	OtherRequirements datatypes.JSONSlice[string]          `json:"otherRequirements,omitempty"`
	Salary            string                               `json:"salary"`
	Location          string                               `json:"location"`
	Type              string                               `json:"type"`
	Dates             string                               `json:"dates"`
	CreatedAt         time.Time                            `json:"-"`
}

type JobPostingList []JobPosting

func (j JobPosting) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}
