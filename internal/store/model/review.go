package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	ReviewTypeAIScreen = "AI_screen"
	ReviewTypeHuman    = "Human"
)

// Canonical decisions. The AI client boundary validates against these; the
// finalize path accepts free text and the stats bucketing stays lossy on
// purpose, matching the dashboard.
const (
	DecisionQualified            = "Qualified"
	DecisionNotQualified         = "Not Qualified"
	DecisionHumanReviewRequested = "Human Review Requested"
)

// ReviewOutcome is the single decision slot attached 1:1 to an application.
// A rewrite replaces the prior content; there is no review history.
type ReviewOutcome struct {
	ApplicationID   uuid.UUID `gorm:"primaryKey" json:"applicationId"`
	ApplicantID     string    `json:"applicantId"`
	JobID           uuid.UUID `json:"jobId"`
	ReviewType      string    `gorm:"not null" json:"reviewType"`
	Decision        string    `gorm:"not null" json:"decision"`
	ReviewTimestamp time.Time `json:"reviewTimestamp"`
	ReviewerID      *string   `json:"reviewerId"`
	ReasoningLog    string    `json:"reasoningLog"`
	IsFinalDecision bool      `json:"isFinalDecision"`
}

type ReviewOutcomeList []ReviewOutcome

func (r ReviewOutcome) String() string {
	val, _ := json.Marshal(r)
	return string(val)
}
