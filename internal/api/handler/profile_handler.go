package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askanything/board/internal/core/ports"
)

// ProfileHandler serves the current identity and its votes.
type ProfileHandler struct {
	service ports.BoardService
}

func NewProfileHandler(service ports.BoardService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me handles GET /v1/me.
func (h *ProfileHandler) Me(c echo.Context) error {
	u, err := h.service.CurrentUser(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Rename handles PUT /v1/me.
//
// @Summary      Change the display name
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      renameRequest  true  "New name"
// @Success      200   {object}  domain.User
// @Failure      422   {object}  map[string]string
// @Router       /v1/me [put]
func (h *ProfileHandler) Rename(c echo.Context) error {
	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	u, err := h.service.RenameUser(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Abandon handles POST /v1/me/abandon and returns the new identity.
func (h *ProfileHandler) Abandon(c echo.Context) error {
	u, err := h.service.AbandonProfile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Votes handles GET /v1/me/votes.
func (h *ProfileHandler) Votes(c echo.Context) error {
	voted, err := h.service.VotedQuestions(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]votedQuestionResponse, 0, len(voted))
	for _, v := range voted {
		out = append(out, votedQuestionResponse{QuestionID: v.Question.ID, Text: v.Question.Text, Direction: v.Direction})
	}
	return c.JSON(http.StatusOK, out)
}

// RemoveVote handles DELETE /v1/me/votes/questions/:id.
func (h *ProfileHandler) RemoveVote(c echo.Context) error {
	if err := h.service.RetractQuestionVote(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Users handles GET /v1/users: every identity this board has known.
func (h *ProfileHandler) Users(c echo.Context) error {
	users, err := h.service.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
