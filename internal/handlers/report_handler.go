package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pos_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportParams pulls the shared filter/start/end/limit query arguments. The
// custom filter requires both dates in YYYY-MM-DD form.
func reportParams(c *gin.Context) (filter string, start, end time.Time, limit int, ok bool) {
	filter = c.DefaultQuery("filter", "all")
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	if filter == "custom" {
		var err error
		start, err = time.Parse("2006-01-02", c.Query("start"))
		if err != nil {
			sendErrorResponse(c, http.StatusBadRequest, "start date must be YYYY-MM-DD")
			return "", time.Time{}, time.Time{}, 0, false
		}
		end, err = time.Parse("2006-01-02", c.Query("end"))
		if err != nil {
			sendErrorResponse(c, http.StatusBadRequest, "end date must be YYYY-MM-DD")
			return "", time.Time{}, time.Time{}, 0, false
		}
		if end.Before(start) {
			sendErrorResponse(c, http.StatusBadRequest, "end date precedes start date")
			return "", time.Time{}, time.Time{}, 0, false
		}
	}
	return filter, start, end, limit, true
}

func (h *ReportHandler) Summary(c *gin.Context) {
	filter, start, end, _, ok := reportParams(c)
	if !ok {
		return
	}
	summary, err := h.reportService.Summary(filter, start, end)
	if err != nil {
		if errors.Is(err, services.ErrUnknownFilter) {
			sendErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		sendErrorResponse(c, http.StatusInternalServerError, "failed to build summary")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": summary})
}

func (h *ReportHandler) StaffSales(c *gin.Context) {
	filter, start, end, limit, ok := reportParams(c)
	if !ok {
		return
	}
	entries, err := h.reportService.StaffSales(filter, start, end, limit)
	if err != nil {
		if errors.Is(err, services.ErrUnknownFilter) {
			sendErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		sendErrorResponse(c, http.StatusInternalServerError, "failed to build staff sales")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": entries})
}

func (h *ReportHandler) TopItems(c *gin.Context) {
	filter, start, end, limit, ok := reportParams(c)
	if !ok {
		return
	}
	entries, err := h.reportService.TopItems(filter, start, end, limit)
	if err != nil {
		if errors.Is(err, services.ErrUnknownFilter) {
			sendErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		sendErrorResponse(c, http.StatusInternalServerError, "failed to build top items")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": entries})
}
