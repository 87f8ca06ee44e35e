package genai

import (
	"cloud.google.com/go/vertexai/genai"
)

// reviewSchema constrains the model output to the ReviewOutcome shape. The
// model fills every field; the scheduler later overrides the bookkeeping
// ones (reviewType, reviewTimestamp, reviewerId and the denormalized ids).
var reviewSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"applicantId": {
			Type:        genai.TypeString,
			Description: "The unique identifier of the applicant being reviewed.",
		},
		"jobId": {
			Type:        genai.TypeString,
			Description: "The unique identifier of the job posting.",
		},
		"reviewType": {
			Type:        genai.TypeString,
			Description: "Type of review conducted by AI. either AI_screen or Human",
		},
		"decision": {
			Type:        genai.TypeString,
			Description: "The decision made by the AI reviewer: Qualified, Not Qualified, Human Review Requested",
		},
		"reviewTimestamp": {
			Type:        genai.TypeString,
			Format:      "date-time",
			Description: "The timestamp when the review was conducted.",
		},
		"reviewerId": {
			Type:        genai.TypeString,
			Nullable:    true,
			Description: "The unique identifier of the human reviewer if needed. if ai reviewed set as null",
		},
		"reasoningLog": {
			Type:        genai.TypeString,
			Description: "Detailed reasoning behind the AI's decision.",
		},
		"isFinalDecision": {
			Type:        genai.TypeBoolean,
			Description: "Indicates if this decision is final or if further review is needed. leave as always false",
		},
	},
	Required: []string{"reviewType", "decision", "reviewTimestamp", "reviewerId", "reasoningLog", "isFinalDecision"},
}
