package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/officedesk/office-console/internal/api/metrics"
	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

// WorkLogHandler handles HTTP requests for work-log operations.
type WorkLogHandler struct {
	service ports.WorkLogService
}

func NewWorkLogHandler(service ports.WorkLogService) *WorkLogHandler {
	return &WorkLogHandler{service: service}
}

type createWorkLogRequest struct {
	TaskID    string    `json:"task_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Note      string    `json:"note,omitempty"`
}

type workLogResponse struct {
	*domain.WorkLog
	// Duration is the adjusted span rendered for display, e.g. "1h 30m".
	Duration string `json:"duration"`
}

func toWorkLogResponse(w *domain.WorkLog) workLogResponse {
	return workLogResponse{WorkLog: w, Duration: domain.FormatDurationMin(w.AdjustedMin)}
}

// Create handles POST /v1/worklogs. The adjusted duration is computed once
// at creation time from the multiplier chain in effect.
//
// @Summary      Log time against a task
// @Tags         worklogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkLogRequest  true  "Work log details"
// @Success      201   {object}  workLogResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/worklogs [post]
func (h *WorkLogHandler) Create(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req createWorkLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	log, err := h.service.Create(c.Request().Context(), scope, ports.CreateWorkLogInput{
		TaskID:    req.TaskID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	})
	if err != nil {
		return err
	}

	metrics.WorkLogsCreatedTotal.Inc()
	metrics.WorkLogMinutesAdjusted.Observe(log.AdjustedMin)

	return c.JSON(http.StatusCreated, toWorkLogResponse(log))
}

// ListByTask handles GET /v1/tasks/:id/worklogs.
//
// @Summary      List a task's work logs
// @Tags         worklogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {array}   workLogResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id}/worklogs [get]
func (h *WorkLogHandler) ListByTask(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	logs, err := h.service.ListByTask(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]workLogResponse, 0, len(logs))
	for _, w := range logs {
		out = append(out, toWorkLogResponse(w))
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/worklogs/:id. Only the user who logged the time
// may remove it.
//
// @Summary      Delete a work log
// @Tags         worklogs
// @Security     BearerAuth
// @Param        id  path  string  true  "Work log id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/worklogs/{id} [delete]
func (h *WorkLogHandler) Delete(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
