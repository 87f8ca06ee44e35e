// Package genai wraps the Vertex AI Gemini API for application screening
// and for the general-purpose text/image endpoint.
package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/store/model"
)

// ErrReviewGeneration covers every failure mode of a screening call:
// transport errors, malformed JSON and schema violations. The caller decides
// whether to retry.
var ErrReviewGeneration = errors.New("review generation failed")

var dataURIPrefix = regexp.MustCompile(`^data:image/(\w+);base64,`)

// ReviewResult is the schema-constrained model output, untouched by the
// client. Stamping of reviewType, timestamps and denormalized ids is the
// scheduler's job.
type ReviewResult struct {
	ApplicantID     string  `json:"applicantId"`
	JobID           string  `json:"jobId"`
	ReviewType      string  `json:"reviewType"`
	Decision        string  `json:"decision"`
	ReviewTimestamp string  `json:"reviewTimestamp"`
	ReviewerID      *string `json:"reviewerId"`
	ReasoningLog    string  `json:"reasoningLog"`
	IsFinalDecision bool    `json:"isFinalDecision"`
}

type Client struct {
	client *genai.Client
	review *genai.GenerativeModel
	plain  *genai.GenerativeModel
}

// NewClient creates a Vertex AI client. The project credential is a startup
// precondition checked by config loading.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.GenAI.Project, cfg.GenAI.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	review := client.GenerativeModel(cfg.GenAI.Model)
	review.GenerationConfig.ResponseMIMEType = "application/json"
	review.GenerationConfig.ResponseSchema = reviewSchema

	plain := client.GenerativeModel(cfg.GenAI.Model)

	return &Client{client: client, review: review, plain: plain}, nil
}

// GenerateReview sends the ordered prompt segments to the model constrained
// by the review schema and parses the JSON reply. The returned decision is
// validated against the canonical decision set.
func (c *Client) GenerateReview(ctx context.Context, segments []string) (*ReviewResult, error) {
	parts := make([]genai.Part, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, genai.Text(s))
	}

	text, err := c.generate(ctx, c.review, parts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReviewGeneration, err)
	}

	var result ReviewResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrReviewGeneration, err)
	}

	switch result.Decision {
	case model.DecisionQualified, model.DecisionNotQualified, model.DecisionHumanReviewRequested:
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", ErrReviewGeneration, result.Decision)
	}

	return &result, nil
}

// GenerateText is the general-purpose text endpoint, unrelated to the
// review pipeline.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, c.plain, []genai.Part{genai.Text(prompt)})
}

// GenerateTextImage accepts free text and/or a base64-encoded image blob.
// Any data-URI prefix is stripped before transmission.
func (c *Client) GenerateTextImage(ctx context.Context, prompt, image string) (string, error) {
	var parts []genai.Part
	if prompt != "" {
		parts = append(parts, genai.Text(prompt))
	}

	if image != "" {
		mimeType := "image/jpeg"
		if m := dataURIPrefix.FindStringSubmatch(image); m != nil {
			mimeType = "image/" + m[1]
			image = image[len(m[0]):]
		}
		data, err := base64.StdEncoding.DecodeString(image)
		if err != nil {
			return "", fmt.Errorf("failed to decode image payload: %w", err)
		}
		parts = append(parts, genai.Blob{MIMEType: mimeType, Data: data})
	}

	if len(parts) == 0 {
		return "", errors.New("empty prompt")
	}

	return c.generate(ctx, c.plain, parts)
}

func (c *Client) generate(ctx context.Context, gm *genai.GenerativeModel, parts []genai.Part) (string, error) {
	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no response candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
