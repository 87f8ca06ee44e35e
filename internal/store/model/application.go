package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus replaces the source system's reviewed boolean with an
// explicit state machine so the scheduler can claim records before calling
// the AI reviewer.
type ApplicationStatus string

const (
	ApplicationStatusUnreviewed ApplicationStatus = "unreviewed"
	ApplicationStatusClaimed    ApplicationStatus = "claimed"
	ApplicationStatusReviewed   ApplicationStatus = "reviewed"
)

// NoResumeUploaded is stored when an applicant submits without a document.
const NoResumeUploaded = "No resume uploaded"

type Application struct {
	ID                 uuid.UUID         `gorm:"primaryKey" json:"id"`
	ApplicantID        string            `gorm:"not null" json:"applicantId"`
	JobID              uuid.UUID         `gorm:"not null;index" json:"jobId"`
	SubmissionDate     time.Time         `gorm:"not null" json:"submissionDate"`
	Question1          string            `json:"question1"`
	Question2          string            `json:"question2"`
	Question3          string            `json:"question3"`
	ResumeText         string            `json:"resumeText"`
	JobApplicationText string            `json:"jobApplicationText"`
	Status             ApplicationStatus `gorm:"not null;default:unreviewed;index" json:"status"`
	ClaimToken         *uuid.UUID        `json:"-"`
	ClaimedAt          *time.Time        `json:"-"`
}

type ApplicationList []Application

// Reviewed reports the dashboard-facing currentStatus boolean.
func (a Application) Reviewed() bool {
	return a.Status == ApplicationStatusReviewed
}

func (a Application) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
