package schema

import "time"

// Study is the persistent document handed to the study store: a named FMECA
// dataset plus the operational context it was generated from. Records are
// always saved with their IsNew flag cleared.
type Study struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Items       []Record  `json:"items" yaml:"items"`
	ContextText string    `json:"contextText" yaml:"context_text"`
	FileName    string    `json:"fileName,omitempty" yaml:"file_name,omitempty"`
}
