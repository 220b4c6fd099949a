package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-admin-console/internal/controller"
	appErrors "github.com/noah-isme/escola-admin-console/pkg/errors"
	"github.com/noah-isme/escola-admin-console/pkg/export"
	"github.com/noah-isme/escola-admin-console/pkg/response"
)

// ExportHandler downloads the current filtered list snapshot of a page
// as CSV or PDF.
type ExportHandler struct {
	sessions *controller.Registry
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(sessions *controller.Registry) *ExportHandler {
	return &ExportHandler{
		sessions: sessions,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
	}
}

// Students godoc
// @Summary Export the students list
// @Tags Students
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Router /alunos/export [get]
func (h *ExportHandler) Students(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	ctrl.EnsureLoaded(c.Request.Context())
	snap := ctrl.Snapshot()

	table := export.Table{Columns: []string{"ID", "Nome", "Email", "Telefone"}}
	for _, student := range snap.Entities {
		table.Rows = append(table.Rows, []string{student.KeyString(), student.Nome, student.Email, student.Telefone})
	}
	h.render(c, table, "alunos", "Alunos")
}

// Courses godoc
// @Summary Export the courses list
// @Tags Courses
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Router /cursos/export [get]
func (h *ExportHandler) Courses(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Courses
	ctrl.EnsureLoaded(c.Request.Context())
	snap := ctrl.Snapshot()

	table := export.Table{Columns: []string{"Código", "Nome", "Descrição"}}
	for _, course := range snap.Entities {
		table.Rows = append(table.Rows, []string{course.Codigo, course.Nome, course.Descricao})
	}
	h.render(c, table, "cursos", "Cursos")
}

func (h *ExportHandler) render(c *gin.Context, table export.Table, filename, title string) {
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, err := h.csv.Render(table)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "export failed"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "pdf":
		data, err := h.pdf.Render(table, title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "export failed"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}
