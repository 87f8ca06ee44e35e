package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/applyflow/applyflow/internal/store/model"
)

type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	ErrorText      string `json:"error"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

type JobListingsRequest struct {
	JobID string `json:"jobId"`
}

func (j *JobListingsRequest) Bind(r *http.Request) error {
	return nil
}

type SubmitReply struct {
	ApplicationID string `json:"applicationId"`
	Message       string `json:"msg"`
}

func (s SubmitReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusCreated)
	return nil
}

type FinalizeRequest struct {
	Decision     string `json:"decision" validate:"required"`
	ReviewerID   string `json:"reviewerId" validate:"required"`
	ReasoningLog string `json:"reasoningLog"`
}

func (f *FinalizeRequest) Bind(r *http.Request) error {
	return nil
}

type AITextRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

func (a *AITextRequest) Bind(r *http.Request) error {
	return nil
}

type AITextImageRequest struct {
	Prompt string `json:"prompt"`
	Image  string `json:"image"`
}

func (a *AITextImageRequest) Bind(r *http.Request) error {
	return nil
}

type AITextReply struct {
	Text string `json:"text"`
}

func (a AITextReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Application is the dashboard-facing view. It keeps the legacy
// currentStatus boolean alongside the richer status enum.
type Application struct {
	ID                 string    `json:"id"`
	ApplicantID        string    `json:"applicantId"`
	JobID              string    `json:"jobId"`
	SubmissionDate     time.Time `json:"submissionDate"`
	Question1          string    `json:"question1"`
	Question2          string    `json:"question2"`
	Question3          string    `json:"question3"`
	ResumeText         string    `json:"resumeText"`
	JobApplicationText string    `json:"jobApplicationText"`
	CurrentStatus      bool      `json:"currentStatus"`
	Status             string    `json:"status"`
}

type ReviewOutcome struct {
	ApplicationID   string    `json:"id"`
	ApplicantID     string    `json:"applicantId"`
	JobID           string    `json:"jobId"`
	ReviewType      string    `json:"reviewType"`
	Decision        string    `json:"decision"`
	ReviewTimestamp time.Time `json:"reviewTimestamp"`
	ReviewerID      *string   `json:"reviewerId"`
	ReasoningLog    string    `json:"reasoningLog"`
	IsFinalDecision bool      `json:"isFinalDecision"`
}

func applicationToApi(a model.Application) Application {
	return Application{
		ID:                 a.ID.String(),
		ApplicantID:        a.ApplicantID,
		JobID:              a.JobID.String(),
		SubmissionDate:     a.SubmissionDate,
		Question1:          a.Question1,
		Question2:          a.Question2,
		Question3:          a.Question3,
		ResumeText:         a.ResumeText,
		JobApplicationText: a.JobApplicationText,
		CurrentStatus:      a.Reviewed(),
		Status:             string(a.Status),
	}
}

func applicationListToApi(list model.ApplicationList) []Application {
	out := make([]Application, 0, len(list))
	for _, a := range list {
		out = append(out, applicationToApi(a))
	}
	return out
}

func reviewToApi(r model.ReviewOutcome) ReviewOutcome {
	return ReviewOutcome{
		ApplicationID:   r.ApplicationID.String(),
		ApplicantID:     r.ApplicantID,
		JobID:           r.JobID.String(),
		ReviewType:      r.ReviewType,
		Decision:        r.Decision,
		ReviewTimestamp: r.ReviewTimestamp,
		ReviewerID:      r.ReviewerID,
		ReasoningLog:    r.ReasoningLog,
		IsFinalDecision: r.IsFinalDecision,
	}
}

func reviewListToApi(list model.ReviewOutcomeList) []ReviewOutcome {
	out := make([]ReviewOutcome, 0, len(list))
	for _, r := range list {
		out = append(out, reviewToApi(r))
	}
	return out
}
