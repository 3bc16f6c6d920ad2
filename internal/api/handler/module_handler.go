package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/officedesk/office-console/internal/core/ports"
)

// ModuleHandler handles HTTP requests for module operations.
type ModuleHandler struct {
	service ports.ModuleService
}

func NewModuleHandler(service ports.ModuleService) *ModuleHandler {
	return &ModuleHandler{service: service}
}

type moduleRequest struct {
	ProjectID   string   `json:"project_id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Multiplier  *float64 `json:"multiplier,omitempty" validate:"omitempty,gt=0"`
}

// Create handles POST /v1/modules.
//
// @Summary      Create a module
// @Tags         modules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      moduleRequest  true  "Module details"
// @Success      201   {object}  domain.Module
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/modules [post]
func (h *ModuleHandler) Create(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req moduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	module, err := h.service.Create(c.Request().Context(), scope, ports.ModuleInput{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Multiplier:  req.Multiplier,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, module)
}

// Get handles GET /v1/modules/:id.
//
// @Summary      Get a module
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Module id"
// @Success      200  {object}  domain.Module
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/modules/{id} [get]
func (h *ModuleHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	module, err := h.service.Get(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, module)
}

// List handles GET /v1/modules.
//
// @Summary      List modules of a project
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  true   "Project id"
// @Param        search      query     string  false  "Partial name match"
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  listEnvelope
// @Failure      400         {object}  map[string]string
// @Failure      403         {object}  map[string]string
// @Router       /v1/modules [get]
func (h *ModuleHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	in := ports.ListModulesInput{
		ProjectID: c.QueryParam("project_id"),
		Search:    c.QueryParam("search"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 20),
	}

	modules, total, err := h.service.List(c.Request().Context(), scope, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listEnvelope{
		Items: modules,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	})
}

// Update handles PUT /v1/modules/:id.
//
// @Summary      Update a module
// @Tags         modules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Module id"
// @Param        body  body      moduleRequest  true  "Module details"
// @Success      200   {object}  domain.Module
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/modules/{id} [put]
func (h *ModuleHandler) Update(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req moduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	module, err := h.service.Update(c.Request().Context(), scope, c.Param("id"), ports.ModuleInput{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Multiplier:  req.Multiplier,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, module)
}

// Delete handles DELETE /v1/modules/:id.
//
// @Summary      Delete a module
// @Tags         modules
// @Security     BearerAuth
// @Param        id  path  string  true  "Module id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/modules/{id} [delete]
func (h *ModuleHandler) Delete(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
