package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mentormatch/connect-api/internal/core/ports"
)

// FeedHandler serves the candidate feed.
type FeedHandler struct {
	service ports.FeedService
}

func NewFeedHandler(service ports.FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

// Get returns the caller's candidate batch.
//
// @Summary      Get the candidate feed
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum candidates to return (default 10, max 50)"
// @Success      200    {object}  feedResponse
// @Failure      401    {object}  errorResponse
// @Router       /feed [get]
func (h *FeedHandler) Get(c echo.Context) error {
	viewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	users, err := h.service.GetFeed(c.Request().Context(), viewerID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedResponse{User: users})
}
