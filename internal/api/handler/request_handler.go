package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentormatch/connect-api/internal/core/domain"
	"github.com/mentormatch/connect-api/internal/core/ports"
)

// RequestHandler handles signal creation, review, and the pending inbox.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Send records an interested or ignored signal toward another user.
//
// @Summary      Send a signal
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status    path      string  true  "Signal"  Enums(interested, ignored)
// @Param        toUserId  path      string  true  "Target user id"
// @Success      201       {object}  requestEnvelope
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /request/send/{status}/{toUserId} [post]
func (h *RequestHandler) Send(c echo.Context) error {
	fromUserID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	signal := domain.Signal(c.Param("status"))
	if signal != domain.SignalInterested && signal != domain.SignalIgnored {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be interested or ignored")
	}

	req, err := h.service.SendSignal(c.Request().Context(), fromUserID, c.Param("toUserId"), signal)
	if err != nil {
		return err
	}

	msg := "connection request sent"
	if signal == domain.SignalIgnored {
		msg = "user ignored"
	}
	return c.JSON(http.StatusCreated, requestEnvelope{Message: msg, Request: req})
}

// Review applies the addressee's decision to a pending request.
//
// @Summary      Review a pending request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status     path      string  true  "Decision"  Enums(accepted, rejected)
// @Param        requestId  path      string  true  "Request id"
// @Success      200        {object}  requestEnvelope
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /request/review/{status}/{requestId} [post]
func (h *RequestHandler) Review(c echo.Context) error {
	reviewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	decision := domain.RequestStatus(c.Param("status"))
	if decision != domain.StatusAccepted && decision != domain.StatusRejected {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be accepted or rejected")
	}

	req, err := h.service.ReviewRequest(c.Request().Context(), c.Param("requestId"), reviewerID, decision)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, requestEnvelope{Message: "request " + string(decision), Request: req})
}

// ListPending returns the caller's review inbox.
//
// @Summary      List pending requests addressed to the caller
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingRequestsResponse
// @Failure      401  {object}  errorResponse
// @Router       /user/requests [get]
func (h *RequestHandler) ListPending(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListPendingRequests(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]pendingRequestResponse, 0, len(items))
	for _, item := range items {
		out = append(out, pendingRequestResponse{
			ID:        item.Request.ID,
			FromUser:  item.FromUser,
			ToUserID:  item.Request.ToUserID,
			Status:    string(item.Request.Status),
			CreatedAt: item.Request.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, pendingRequestsResponse{AvailableRequest: out})
}
