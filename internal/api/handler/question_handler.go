package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askanything/board/internal/api/metrics"
	"github.com/askanything/board/internal/core/domain"
	"github.com/askanything/board/internal/core/ports"
)

// BoardHandler handles question, answer and vote requests.
type BoardHandler struct {
	service ports.BoardService
}

func NewBoardHandler(service ports.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// List handles GET /v1/questions.
//
// @Summary      List questions, newest first
// @Tags         questions
// @Produce      json
// @Success      200  {array}   questionSummaryResponse
// @Router       /v1/questions [get]
func (h *BoardHandler) List(c echo.Context) error {
	list, err := h.service.ListQuestions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaries(list))
}

// Get handles GET /v1/questions/:id.
//
// @Summary      Get a question with its answers
// @Tags         questions
// @Produce      json
// @Param        id   path      string  true  "Question id"
// @Success      200  {object}  questionDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/questions/{id} [get]
func (h *BoardHandler) Get(c echo.Context) error {
	detail, err := h.service.GetQuestion(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetail(detail))
}

// Create handles POST /v1/questions.
//
// @Summary      Ask a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        body  body      createQuestionRequest  true  "Question"
// @Success      201   {object}  domain.Question
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/questions [post]
func (h *BoardHandler) Create(c echo.Context) error {
	var req createQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	q, err := h.service.CreateQuestion(c.Request().Context(), req.Text, req.Description)
	if err != nil {
		return err
	}
	metrics.ItemsCreatedTotal.WithLabelValues("question").Inc()
	return c.JSON(http.StatusCreated, q)
}

// Edit handles PUT /v1/questions/:id. Only the author may edit.
func (h *BoardHandler) Edit(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err := h.service.EditQuestion(c.Request().Context(), c.Param("id"), req.Text); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/questions/:id. Answers are kept.
func (h *BoardHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteQuestion(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Vote handles POST /v1/questions/:id/vote. Repeating a direction retracts it.
//
// @Summary      Vote on a question
// @Tags         votes
// @Accept       json
// @Param        id    path  string       true  "Question id"
// @Param        body  body  voteRequest  true  "Direction"
// @Success      204
// @Failure      422   {object}  map[string]string
// @Router       /v1/questions/{id}/vote [post]
func (h *BoardHandler) Vote(c echo.Context) error {
	dir, err := bindVote(c)
	if err != nil {
		return err
	}
	if err := h.service.VoteQuestion(c.Request().Context(), c.Param("id"), dir); err != nil {
		return err
	}
	metrics.VotesTotal.WithLabelValues("question", string(dir)).Inc()
	return c.NoContent(http.StatusNoContent)
}

func bindVote(c echo.Context) (domain.Direction, error) {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return domain.Direction(req.Direction), nil
}
