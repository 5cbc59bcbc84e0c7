package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentormatch/connect-api/internal/core/ports"
)

// ProfileHandler handles profile view and edit.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// View returns the caller's own profile.
//
// @Summary      View own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /profile/view [get]
func (h *ProfileHandler) View(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Edit updates the caller's editable profile fields.
//
// @Summary      Edit own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /profile/edit [patch]
func (h *ProfileHandler) Edit(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req editProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.EditProfile(c.Request().Context(), userID, ports.EditProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhotoURL:  req.PhotoURL,
		Gender:    req.Gender,
		Age:       req.Age,
		About:     req.About,
		Skills:    req.Skills,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
