package model

// ExportRequest asks the export service to package events as evidence.
type ExportRequest struct {
	EventIDs         []string `json:"event_ids"`
	CaseName         string   `json:"case_name"`
	CaseNumber       *string  `json:"case_number,omitempty"`
	OperatorNotes    *string  `json:"operator_notes,omitempty"`
	IncludeSnapshots bool     `json:"include_snapshots"`
	IncludeClips     bool     `json:"include_clips"`
}

type ExportDescriptor struct {
	ExportID    string  `json:"export_id"`
	FileCount   int     `json:"file_count"`
	TotalSizeMB float64 `json:"total_size_mb"`
	ExpiresAt   string  `json:"expires_at"`
}
