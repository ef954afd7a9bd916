package domain

import "time"

// Event is one row of an activity log. Timestamp is nil when the source value
// was missing or unparseable; downstream ordering treats nil as the minimum
// timestamp so traces stay deterministic.
type Event struct {
	CaseID         string         `json:"case_id"`
	Activity       string         `json:"activity"`
	Timestamp      *time.Time     `json:"timestamp,omitempty"`
	Resource       string         `json:"resource,omitempty"`
	DocumentNumber string         `json:"document_number,omitempty"`
	ItemNumber     string         `json:"item_number,omitempty"`
	Attributes     map[string]any `json:"attributes,omitempty"`
}

// Trace is the ordered event sequence of one case.
type Trace struct {
	CaseID string  `json:"case_id"`
	Events []Event `json:"events"`
}

// Variant summarizes one distinct activity sequence and how many cases
// followed it.
type Variant struct {
	Sequence string `json:"sequence"`
	Count    int    `json:"count"`
}
