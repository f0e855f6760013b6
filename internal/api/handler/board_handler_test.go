package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/askanything/board/internal/api/metrics"
	"github.com/askanything/board/internal/core/domain"
	"github.com/askanything/board/internal/core/service"
	"github.com/askanything/board/internal/core/store"
	"github.com/askanything/board/internal/infrastructure/kv/memory"
)

func newTestService(t *testing.T) *service.BoardService {
	t.Helper()
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("h-%d", n)
	}
	now := func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	st := store.New(memory.New(), ids, now, zerolog.Nop())
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return service.NewBoardService(st, ids, now, zerolog.Nop())
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	return c, rec
}

func TestBoardHandler_Create_Success(t *testing.T) {
	e := newEcho()
	h := NewBoardHandler(newTestService(t))

	c, rec := jsonContext(e, http.MethodPost, "/v1/questions", `{"text":"  Why Go?  ","description":"curious"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["text"] != "Why Go?" || resp["description"] != "curious" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["createdAt"] != "2026-03-01T12:00:00.000Z" {
		t.Fatalf("unexpected createdAt: %v", resp["createdAt"])
	}
}

func TestBoardHandler_Create_MissingText(t *testing.T) {
	e := newEcho()
	h := NewBoardHandler(newTestService(t))

	c, _ := jsonContext(e, http.MethodPost, "/v1/questions", `{"description":"no text"}`)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestBoardHandler_Create_WhitespaceTextIsDomainError(t *testing.T) {
	e := newEcho()
	h := NewBoardHandler(newTestService(t))

	c, _ := jsonContext(e, http.MethodPost, "/v1/questions", `{"text":"   "}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestBoardHandler_Create_InvalidPayload(t *testing.T) {
	e := newEcho()
	h := NewBoardHandler(newTestService(t))

	c, _ := jsonContext(e, http.MethodPost, "/v1/questions", "not-json")
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBoardHandler_VoteAndList(t *testing.T) {
	e := newEcho()
	svc := newTestService(t)
	h := NewBoardHandler(svc)

	q, err := svc.CreateQuestion(context.Background(), "Tabs or spaces?", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c, rec := jsonContext(e, http.MethodPost, "/v1/questions/"+q.ID+"/vote", `{"direction":"up"}`, "id", q.ID)
	if err := h.Vote(c); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, rec = jsonContext(e, http.MethodGet, "/v1/questions", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 question, got %d", len(list))
	}
	if list[0]["myVote"] != "up" || list[0]["totalVotes"] != float64(1) {
		t.Fatalf("unexpected summary: %+v", list[0])
	}
	if list[0]["authorName"] != domain.DefaultName {
		t.Fatalf("unexpected author: %v", list[0]["authorName"])
	}
}

func TestBoardHandler_Vote_BadDirection(t *testing.T) {
	e := newEcho()
	h := NewBoardHandler(newTestService(t))

	c, _ := jsonContext(e, http.MethodPost, "/v1/questions/x/vote", `{"direction":"sideways"}`, "id", "x")
	err := h.Vote(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestBoardHandler_Get_NotFound(t *testing.T) {
	e := newEcho()
	h := NewBoardHandler(newTestService(t))

	c, _ := jsonContext(e, http.MethodGet, "/v1/questions/missing", "", "id", "missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestBoardHandler_AnswerFlow(t *testing.T) {
	e := newEcho()
	svc := newTestService(t)
	h := NewBoardHandler(svc)

	q, err := svc.CreateQuestion(context.Background(), "Best editor?", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c, rec := jsonContext(e, http.MethodPost, "/v1/questions/"+q.ID+"/answers", `{"text":"vim"}`, "id", q.ID)
	if err := h.CreateAnswer(c); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var a domain.Answer
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if a.QuestionID != q.ID || a.Text != "vim" {
		t.Fatalf("unexpected answer: %+v", a)
	}

	c, _ = jsonContext(e, http.MethodPost, "/v1/answers/"+a.ID+"/vote", `{"direction":"down"}`, "id", a.ID)
	if err := h.VoteAnswer(c); err != nil {
		t.Fatalf("vote answer: %v", err)
	}

	c, rec = jsonContext(e, http.MethodGet, "/v1/questions/"+q.ID, "", "id", q.ID)
	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	var detail struct {
		ID      string `json:"id"`
		Answers []struct {
			ID     string       `json:"id"`
			Votes  domain.Votes `json:"votes"`
			MyVote string       `json:"myVote"`
		} `json:"answers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if detail.ID != q.ID || len(detail.Answers) != 1 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if detail.Answers[0].Votes.Down != 1 || detail.Answers[0].MyVote != "down" {
		t.Fatalf("unexpected answer view: %+v", detail.Answers[0])
	}
}

func TestBoardHandler_CreateAnswer_UnknownQuestion(t *testing.T) {
	e := newEcho()
	h := NewBoardHandler(newTestService(t))

	c, _ := jsonContext(e, http.MethodPost, "/v1/questions/nope/answers", `{"text":"hello"}`, "id", "nope")
	if err := h.CreateAnswer(c); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestBoardHandler_EditAndDelete(t *testing.T) {
	e := newEcho()
	svc := newTestService(t)
	h := NewBoardHandler(svc)

	q, err := svc.CreateQuestion(context.Background(), "Draft", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c, rec := jsonContext(e, http.MethodPut, "/v1/questions/"+q.ID, `{"text":"Final"}`, "id", q.ID)
	if err := h.Edit(c); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	detail, err := svc.GetQuestion(context.Background(), q.ID)
	if err != nil || detail.Question.Text != "Final" {
		t.Fatalf("edit not applied: %+v %v", detail, err)
	}

	c, _ = jsonContext(e, http.MethodDelete, "/v1/questions/"+q.ID, "", "id", q.ID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetQuestion(context.Background(), q.ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question gone, got %v", err)
	}
}

func TestBoardHandler_Vote_UnknownIDIsAcceptedNoOp(t *testing.T) {
	e := newEcho()
	svc := newTestService(t)
	h := NewBoardHandler(svc)
	counter := metrics.VotesTotal.WithLabelValues("question", "down")
	before := testutil.ToFloat64(counter)

	c, rec := jsonContext(e, http.MethodPost, "/v1/questions/gone/vote", `{"direction":"down"}`, "id", "gone")
	if err := h.Vote(c); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("expected accepted vote counted once, got %v", got)
	}

	u, err := svc.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if len(u.VotedQuestions) != 0 {
		t.Fatalf("expected no recorded vote, got %+v", u.VotedQuestions)
	}
}
