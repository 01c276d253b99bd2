package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-desk-api/internal/dto"
	"github.com/noah-isme/hostel-desk-api/pkg/response"
)

type reportService interface {
	Generate(ctx context.Context, req dto.ReportRequest) (*dto.ReportFile, error)
}

// ReportHandler exposes downloadable reports.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Download godoc
// @Summary Download a hostel report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param kind path string true "complaints or occupancy"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/{kind} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	req := dto.ReportRequest{
		Kind:   dto.ReportKind(c.Param("kind")),
		Format: dto.ReportFormat(c.Query("format")),
	}
	file, err := h.reports.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
