package models

import "time"

// ExportFormat enumerates transcript export formats.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob tracks one transcript export.
type ExportJob struct {
	ID           string       `json:"id"`
	StudentID    int          `json:"student_id"`
	Format       ExportFormat `json:"format"`
	Semester     string       `json:"semester"`
	Status       ExportStatus `json:"status"`
	ResultURL    *string      `json:"result_url,omitempty"`
	RelativePath string       `json:"-"`
	ErrorMessage *string      `json:"error_message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
}
