package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Warning records a data-quality finding. The offending unit was skipped and
// processing continued; structural failures are returned as errors instead.
type Warning struct {
	Resource string `json:"resource,omitempty"`
	Row      *int   `json:"row,omitempty"`
	Message  string `json:"message"`
}

func (w Warning) String() string {
	if w.Row != nil {
		return fmt.Sprintf("%s row %d: %s", w.Resource, *w.Row, w.Message)
	}
	if w.Resource != "" {
		return fmt.Sprintf("%s: %s", w.Resource, w.Message)
	}
	return w.Message
}

// RowWarning builds a warning pinned to a 1-based row number.
func RowWarning(resource string, row int, format string, args ...any) Warning {
	return Warning{Resource: resource, Row: &row, Message: fmt.Sprintf(format, args...)}
}

// Dataset is the canonical output of one ingestion run: every collection the
// downstream analytics layers may consume, plus the full warning list.
type Dataset struct {
	RunID      uuid.UUID      `json:"run_id"`
	Source     string         `json:"source"`
	Orders     []Document     `json:"orders"`
	Deliveries []Document     `json:"deliveries"`
	Invoices   []Document     `json:"invoices"`
	Parties    []Party        `json:"parties"`
	FlowEdges  []FlowEdge     `json:"flow_edges"`
	Traces     []Trace        `json:"traces,omitempty"`
	Variants   []Variant      `json:"variants,omitempty"`
	Warnings   []Warning      `json:"warnings,omitempty"`
	Stats      map[string]int `json:"stats,omitempty"`
}

// NewDataset allocates a dataset with a fresh run id.
func NewDataset(source string) Dataset {
	return Dataset{
		RunID:  uuid.New(),
		Source: source,
		Stats:  map[string]int{},
	}
}
