package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opendining/reservation-service/internal/dto"
	"github.com/opendining/reservation-service/internal/models"
	"github.com/opendining/reservation-service/internal/service"
)

type TableHandler struct {
	svc service.TableService
}

func NewTableHandler(svc service.TableService) *TableHandler {
	return &TableHandler{svc: svc}
}

func (h *TableHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/tables")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id/seat", h.Seat)
	g.DELETE("/:id/seat", h.Clear)
}

func (h *TableHandler) List(c echo.Context) error {
	tables, err := h.svc.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.TableResponse, len(tables))
	for i, t := range tables {
		resp[i] = dto.ToTableResponse(&t)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *TableHandler) Create(c echo.Context) error {
	var req dto.CreateTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	table, err := h.svc.Create(c.Request().Context(), &models.Table{
		TableName: req.TableName,
		Capacity:  req.Capacity,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToTableResponse(table))
}

func (h *TableHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid table id")
	}

	table, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTableResponse(table))
}

func (h *TableHandler) Seat(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid table id")
	}

	var req dto.SeatTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	table, err := h.svc.Seat(c.Request().Context(), id, req.ReservationID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTableResponse(table))
}

func (h *TableHandler) Clear(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid table id")
	}

	table, err := h.svc.Clear(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTableResponse(table))
}
