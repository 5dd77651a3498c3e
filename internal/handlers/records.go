package handlers

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"inspection-report/internal/middleware"
	"inspection-report/internal/models"
	"inspection-report/internal/preview"
	"inspection-report/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RecordsHandler struct {
	submissions *services.SubmissionService
	logger      *zap.Logger
}

func NewRecordsHandler(submissions *services.SubmissionService, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{
		submissions: submissions,
		logger:      logger,
	}
}

// CreateRecord godoc
// @Summary     Submit an inspection report
// @Description Stores photos and the report workbook, then appends the record to the log
// @Tags        records
// @Accept      json
// @Produce     json
// @Param       request body models.SubmitRequest true "Report"
// @Success     201 {object} models.SubmitResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /records [post]
func (h *RecordsHandler) CreateRecord(c *gin.Context) {
	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	resp, err := h.submissions.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "submit", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListRecords godoc
// @Summary     List submitted reports
// @Description Returns records in submission order, optionally limited to one user
// @Tags        records
// @Produce     json
// @Param       userId query string false "User id"
// @Success     200 {object} models.RecordListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /records [get]
func (h *RecordsHandler) ListRecords(c *gin.Context) {
	h.list(c, c.Query("userId"))
}

// MyRecords godoc
// @Summary     List my reports
// @Description Returns the signed-in user's records in submission order
// @Tags        records
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.RecordListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /me/records [get]
func (h *RecordsHandler) MyRecords(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	h.list(c, userID)
}

func (h *RecordsHandler) list(c *gin.Context, userID string) {
	records, err := h.submissions.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "list", err)
		return
	}
	c.JSON(http.StatusOK, models.RecordListResponse{Records: records})
}

// GetRecord godoc
// @Summary     Get one report
// @Tags        records
// @Produce     json
// @Param       row_id path string true "Row id"
// @Success     200 {object} models.SubmissionSummary
// @Failure     404 {object} models.ErrorResponse
// @Router      /records/{row_id} [get]
func (h *RecordsHandler) GetRecord(c *gin.Context) {
	record, err := h.submissions.Get(c.Request.Context(), c.Param("row_id"))
	if err != nil {
		respondError(c, h.logger, "get", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteRecord godoc
// @Summary     Delete a report
// @Description Removes the record from the log when the PIN matches the one given at submission. Stored files are kept.
// @Tags        records
// @Accept      json
// @Produce     json
// @Param       row_id  path string                     true "Row id"
// @Param       request body models.DeleteRecordRequest true "PIN"
// @Success     200 {object} models.StatusResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /records/{row_id} [delete]
func (h *RecordsHandler) DeleteRecord(c *gin.Context) {
	var req models.DeleteRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if err := h.submissions.Delete(c.Request.Context(), c.Param("row_id"), req.PIN); err != nil {
		respondError(c, h.logger, "delete", err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: models.StatusOK})
}

// PrintRecord godoc
// @Summary     Printable report
// @Description Renders a stored record as a printable HTML page
// @Tags        records
// @Produce     html
// @Param       row_id path string true "Row id"
// @Success     200 {string} string "HTML page"
// @Failure     404 {object} models.ErrorResponse
// @Router      /records/{row_id}/print [get]
func (h *RecordsHandler) PrintRecord(c *gin.Context) {
	record, err := h.submissions.Get(c.Request.Context(), c.Param("row_id"))
	if err != nil {
		respondError(c, h.logger, "print", err)
		return
	}

	var buf bytes.Buffer
	if err := preview.WritePrintHTML(&buf, preview.RenderPrint(*record)); err != nil {
		respondError(c, h.logger, "print", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// ExportRecords godoc
// @Summary     Export the submission log
// @Description Returns the log as an .xlsx workbook, optionally limited to one user
// @Tags        records
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param       userId query string false "User id"
// @Success     200 {file} file
// @Failure     500 {object} models.ErrorResponse
// @Router      /records/export.xlsx [get]
func (h *RecordsHandler) ExportRecords(c *gin.Context) {
	data, err := h.submissions.ExportLog(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, h.logger, "export", err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape("제출기록.xlsx"))
	c.Data(http.StatusOK, xlsxContentType, data)
}
