package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/officedesk/office-console/internal/api/metrics"
	"github.com/officedesk/office-console/internal/core/ports"
)

// ReportHandler serves the work-log report tree, one level at a time for the
// interactive surface and as a whole for the export.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func reportRequest(c echo.Context) (ports.ReportRequest, error) {
	from, err := queryTime(c, "from", false)
	if err != nil {
		return ports.ReportRequest{}, err
	}
	to, err := queryTime(c, "to", true)
	if err != nil {
		return ports.ReportRequest{}, err
	}
	return ports.ReportRequest{
		From:      from,
		To:        to,
		ProjectID: c.QueryParam("project_id"),
	}, nil
}

// Projects handles GET /v1/reports/worklogs. With tree=true the full
// three-level tree is returned; otherwise only the project level.
//
// @Summary      Work-log report, project level
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from        query     string  false  "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param        to          query     string  false  "Range end (RFC 3339 or YYYY-MM-DD; a bare date covers the whole day)"
// @Param        project_id  query     string  false  "Narrow to one project"
// @Param        tree        query     bool    false  "Return the full tree"
// @Success      200         {array}   ports.ProjectRollup
// @Failure      400         {object}  map[string]string
// @Router       /v1/reports/worklogs [get]
func (h *ReportHandler) Projects(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	req, err := reportRequest(c)
	if err != nil {
		return err
	}

	level := "projects"
	if c.QueryParam("tree") == "true" {
		level = "tree"
	}
	start := time.Now()

	var rollups []ports.ProjectRollup
	if level == "tree" {
		rollups, err = h.service.FullTree(c.Request().Context(), scope, req)
	} else {
		rollups, err = h.service.ProjectRollups(c.Request().Context(), scope, req)
	}
	if err != nil {
		return err
	}

	metrics.ReportBuildDuration.WithLabelValues(level).Observe(time.Since(start).Seconds())
	metrics.ReportsBuiltTotal.WithLabelValues(level).Inc()

	return c.JSON(http.StatusOK, rollups)
}

// Modules handles GET /v1/reports/worklogs/modules.
//
// @Summary      Work-log report, module level of one project
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  true   "Project id"
// @Param        from        query     string  false  "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param        to          query     string  false  "Range end (RFC 3339 or YYYY-MM-DD; a bare date covers the whole day)"
// @Success      200         {array}   ports.ModuleRollup
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /v1/reports/worklogs/modules [get]
func (h *ReportHandler) Modules(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	req, err := reportRequest(c)
	if err != nil {
		return err
	}

	start := time.Now()
	rollups, err := h.service.ModuleRollups(c.Request().Context(), scope, c.QueryParam("project_id"), req)
	if err != nil {
		return err
	}

	metrics.ReportBuildDuration.WithLabelValues("modules").Observe(time.Since(start).Seconds())
	metrics.ReportsBuiltTotal.WithLabelValues("modules").Inc()

	return c.JSON(http.StatusOK, rollups)
}

// Tasks handles GET /v1/reports/worklogs/tasks. An empty module_id selects
// the project's module-less tasks.
//
// @Summary      Work-log report, task level of one module
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  true   "Project id"
// @Param        module_id   query     string  false  "Module id; empty for tasks without a module"
// @Param        from        query     string  false  "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param        to          query     string  false  "Range end (RFC 3339 or YYYY-MM-DD; a bare date covers the whole day)"
// @Success      200         {array}   ports.TaskRollup
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /v1/reports/worklogs/tasks [get]
func (h *ReportHandler) Tasks(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	req, err := reportRequest(c)
	if err != nil {
		return err
	}

	start := time.Now()
	rollups, err := h.service.TaskRollups(c.Request().Context(), scope, c.QueryParam("project_id"), c.QueryParam("module_id"), req)
	if err != nil {
		return err
	}

	metrics.ReportBuildDuration.WithLabelValues("tasks").Observe(time.Since(start).Seconds())
	metrics.ReportsBuiltTotal.WithLabelValues("tasks").Inc()

	return c.JSON(http.StatusOK, rollups)
}

// Export handles GET /v1/reports/worklogs/export and streams the report as
// an xlsx workbook.
//
// @Summary      Export the work-log report as a spreadsheet
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        from        query  string  false  "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param        to          query  string  false  "Range end (RFC 3339 or YYYY-MM-DD; a bare date covers the whole day)"
// @Param        project_id  query  string  false  "Narrow to one project"
// @Success      200  {file}  binary
// @Failure      400  {object}  map[string]string
// @Router       /v1/reports/worklogs/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	req, err := reportRequest(c)
	if err != nil {
		return err
	}

	workbook, err := h.service.Export(c.Request().Context(), scope, req)
	if err != nil {
		return err
	}

	metrics.ReportExportsTotal.Inc()

	filename := "worklog-report-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Stream(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		bytes.NewReader(workbook))
}
