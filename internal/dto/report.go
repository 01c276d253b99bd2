package dto

// ReportKind names a downloadable report.
type ReportKind string

const (
	ReportComplaints ReportKind = "complaints"
	ReportOccupancy  ReportKind = "occupancy"
)

// ReportFormat is the rendered document type.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportRequest captures GET /reports/:kind parameters.
type ReportRequest struct {
	Kind   ReportKind   `validate:"required,oneof=complaints occupancy"`
	Format ReportFormat `validate:"required,oneof=csv pdf"`
}

// ReportFile is a rendered report ready to stream.
type ReportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
