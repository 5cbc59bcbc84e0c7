package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentormatch/connect-api/internal/core/ports"
)

// ConnectionHandler serves the connections list.
type ConnectionHandler struct {
	service ports.ConnectionService
}

func NewConnectionHandler(service ports.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

// List returns the caller's connections, newest first.
//
// @Summary      List connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  connectionsResponse
// @Failure      401  {object}  errorResponse
// @Router       /user/connections [get]
func (h *ConnectionHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListConnections(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]connectionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, connectionResponse{User: item.User, Since: item.Since})
	}
	return c.JSON(http.StatusOK, connectionsResponse{Data: out})
}
