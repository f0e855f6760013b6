package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askanything/board/internal/api/metrics"
)

// CreateAnswer handles POST /v1/questions/:id/answers.
//
// @Summary      Answer a question
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Question id"
// @Param        body  body      textRequest  true  "Answer"
// @Success      201   {object}  domain.Answer
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/questions/{id}/answers [post]
func (h *BoardHandler) CreateAnswer(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	a, err := h.service.CreateAnswer(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	metrics.ItemsCreatedTotal.WithLabelValues("answer").Inc()
	return c.JSON(http.StatusCreated, a)
}

func (h *BoardHandler) EditAnswer(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err := h.service.EditAnswer(c.Request().Context(), c.Param("id"), req.Text); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BoardHandler) DeleteAnswer(c echo.Context) error {
	if err := h.service.DeleteAnswer(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// VoteAnswer handles POST /v1/answers/:id/vote.
func (h *BoardHandler) VoteAnswer(c echo.Context) error {
	dir, err := bindVote(c)
	if err != nil {
		return err
	}
	if err := h.service.VoteAnswer(c.Request().Context(), c.Param("id"), dir); err != nil {
		return err
	}
	metrics.VotesTotal.WithLabelValues("answer", string(dir)).Inc()
	return c.NoContent(http.StatusNoContent)
}
