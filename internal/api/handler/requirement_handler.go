package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/officedesk/office-console/internal/core/ports"
)

// RequirementHandler handles HTTP requests for requirement intake.
type RequirementHandler struct {
	service ports.RequirementService
}

func NewRequirementHandler(service ports.RequirementService) *RequirementHandler {
	return &RequirementHandler{service: service}
}

type createRequirementRequest struct {
	ClientID    string `json:"client_id,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type" validate:"required"`
	Priority    string `json:"priority,omitempty"`
}

type updateRequirementRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// Create handles POST /v1/requirements. A change_request must reference the
// requirement it amends via parent_id.
//
// @Summary      Create a requirement
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequirementRequest  true  "Requirement details"
// @Success      201   {object}  domain.Requirement
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/requirements [post]
func (h *RequirementHandler) Create(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req createRequirementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	requirement, err := h.service.Create(c.Request().Context(), scope, ports.CreateRequirementInput{
		ClientID:    req.ClientID,
		ParentID:    req.ParentID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, requirement)
}

// Get handles GET /v1/requirements/:id.
//
// @Summary      Get a requirement
// @Tags         requirements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Requirement id"
// @Success      200  {object}  domain.Requirement
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/requirements/{id} [get]
func (h *RequirementHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	requirement, err := h.service.Get(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, requirement)
}

// List handles GET /v1/requirements.
//
// @Summary      List requirements visible to the caller
// @Tags         requirements
// @Produce      json
// @Security     BearerAuth
// @Param        type       query     string  false  "Filter by type"
// @Param        status     query     string  false  "Filter by status"
// @Param        parent_id  query     string  false  "Filter by parent requirement"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listEnvelope
// @Router       /v1/requirements [get]
func (h *RequirementHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	in := ports.ListRequirementsInput{
		Type:     c.QueryParam("type"),
		Status:   c.QueryParam("status"),
		ParentID: c.QueryParam("parent_id"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}

	requirements, total, err := h.service.List(c.Request().Context(), scope, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listEnvelope{
		Items: requirements,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	})
}

// Update handles PUT /v1/requirements/:id. Observable changes are recorded
// as activities alongside the update.
//
// @Summary      Update a requirement
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Requirement id"
// @Param        body  body      updateRequirementRequest  true  "Fields to change"
// @Success      200   {object}  domain.Requirement
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/requirements/{id} [put]
func (h *RequirementHandler) Update(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req updateRequirementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	requirement, err := h.service.Update(c.Request().Context(), scope, c.Param("id"), ports.UpdateRequirementInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, requirement)
}

// Delete handles DELETE /v1/requirements/:id.
//
// @Summary      Delete a requirement
// @Tags         requirements
// @Security     BearerAuth
// @Param        id  path  string  true  "Requirement id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/requirements/{id} [delete]
func (h *RequirementHandler) Delete(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Activities handles GET /v1/requirements/:id/activities.
//
// @Summary      List a requirement's activity history
// @Tags         requirements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Requirement id"
// @Success      200  {array}   domain.Activity
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/requirements/{id}/activities [get]
func (h *RequirementHandler) Activities(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	activities, err := h.service.Activities(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, activities)
}
