package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/officedesk/office-console/internal/core/ports"
)

// ClientHandler handles HTTP requests for client (tenant) operations.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type clientRequest struct {
	Name       string   `json:"name" validate:"required"`
	Multiplier *float64 `json:"multiplier,omitempty" validate:"omitempty,gt=0"`
}

// listEnvelope is the shared paged-list response shape.
type listEnvelope struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page,omitempty"`
	Limit int   `json:"limit,omitempty"`
}

// Create handles POST /v1/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.Create(c.Request().Context(), scope, ports.ClientInput{
		Name:       req.Name,
		Multiplier: req.Multiplier,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, client)
}

// Get handles GET /v1/clients/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  domain.Client
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	client, err := h.service.Get(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, client)
}

// List handles GET /v1/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial name match"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listEnvelope
// @Failure      403     {object}  map[string]string
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	filter := ports.ListClientsFilter{
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}

	clients, total, err := h.service.List(c.Request().Context(), scope, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listEnvelope{
		Items: clients,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Update handles PUT /v1/clients/:id.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client id"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.Update(c.Request().Context(), scope, c.Param("id"), ports.ClientInput{
		Name:       req.Name,
		Multiplier: req.Multiplier,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /v1/clients/:id.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Param        id  path  string  true  "Client id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
