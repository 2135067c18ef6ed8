package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/services"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

type ImportHandler struct {
	importer *services.GradeImportService
	logger   *logrus.Logger
}

func NewImportHandler(importer *services.GradeImportService, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{
		importer: importer,
		logger:   logger,
	}
}

// ImportGrades ingests a grading sheet uploaded as multipart form field
// "file". The file is fully validated before any row is applied.
func (h *ImportHandler) ImportGrades(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.SendValidationError(c, "Missing file upload", "expected multipart field 'file'")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.SendInternalError(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	rows, err := h.importer.Parse(file)
	if err != nil {
		utils.SendValidationError(c, "Invalid grade sheet", err.Error())
		return
	}

	report, err := h.importer.Apply(rows)
	if err != nil {
		utils.SendInternalError(c, "Failed to apply grade import")
		return
	}

	utils.SendSuccess(c, report)
}
