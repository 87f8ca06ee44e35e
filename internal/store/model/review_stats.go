package model

import (
	"strings"
)

// ReviewStats feeds the reviewer dashboard cards.
type ReviewStats struct {
	TotalApplications int            `json:"totalApplications"`
	Reviewed          int            `json:"reviewed"`
	PerJobCounts      map[string]int `json:"perJobCounts"`
	DecisionCounts    DecisionCounts `json:"decisionCounts"`
}

type DecisionCounts struct {
	Qualified            int `json:"Qualified"`
	NotQualified         int `json:"NotQualified"`
	HumanReviewRequested int `json:"HumanReviewRequested"`
	Other                int `json:"Other"`
}

// NewReviewStats scans the applications once (reviewed count, group by job)
// and the outcomes once (decision buckets).
func NewReviewStats(applications []Application, reviews []ReviewOutcome) ReviewStats {
	stats := ReviewStats{
		TotalApplications: len(applications),
		PerJobCounts:      make(map[string]int),
	}

	for _, a := range applications {
		if a.Reviewed() {
			stats.Reviewed++
		}
		stats.PerJobCounts[a.JobID.String()]++
	}

	for _, r := range reviews {
		stats.DecisionCounts.add(r.Decision)
	}

	return stats
}

// add classifies a decision string by case-insensitive substring match. The
// dashboard depends on this exact (lossy) bucketing, so it stays as the
// source system defined it rather than validating the canonical enum.
func (c *DecisionCounts) add(decision string) {
	d := strings.ToLower(decision)
	switch {
	case strings.Contains(d, "qualif") && !strings.Contains(d, "not"):
		c.Qualified++
	case strings.Contains(d, "not"):
		c.NotQualified++
	case strings.Contains(d, "human"):
		c.HumanReviewRequested++
	default:
		c.Other++
	}
}
