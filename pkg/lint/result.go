package lint

import (
	"errors"
	"time"

	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
)

// IssueIO marks an issue caused by reading the file rather than parsing it.
const IssueIO = "io"

// Result is the outcome of linting one template.
type Result struct {
	File        string        `json:"file"`
	Valid       bool          `json:"valid"`
	Bytes       int           `json:"bytes"`
	ContentHash string        `json:"content_hash,omitempty"`
	Nodes       int           `json:"nodes,omitempty"`
	Depth       int           `json:"depth,omitempty"`
	Variables   []string      `json:"variables,omitempty"`
	Errors      []Issue       `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}

// FirstError returns the first issue, or nil for a valid result.
func (r Result) FirstError() *Issue {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// Issue is a single lint finding.
type Issue struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Offset     int    `json:"offset"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Context    string `json:"context,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func issueFrom(err error) Issue {
	var perr *tmplErrors.Error
	if !errors.As(err, &perr) {
		return Issue{Kind: "unknown", Message: err.Error()}
	}
	return Issue{
		Kind:       string(perr.Kind),
		Message:    perr.Message,
		Offset:     perr.Offset,
		Line:       perr.Position.Line,
		Column:     perr.Position.Column,
		Limit:      perr.Limit,
		Context:    perr.Context,
		Suggestion: perr.Suggestion,
	}
}

// Summary aggregates a set of Results.
type Summary struct {
	Files   int            `json:"files"`
	Valid   int            `json:"valid"`
	Invalid int            `json:"invalid"`
	ByKind  map[string]int `json:"by_kind,omitempty"`
}

// Summarize counts valid and invalid results and tallies issues by kind.
func Summarize(results []Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Valid {
			s.Valid++
			continue
		}
		s.Invalid++
		for _, issue := range r.Errors {
			if s.ByKind == nil {
				s.ByKind = make(map[string]int)
			}
			s.ByKind[issue.Kind]++
		}
	}
	return s
}
