package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ahrav/go-hackq/internal/domain"
)

// AnswerRequest is the body of POST /v1/answer.
type AnswerRequest struct {
	Question string   `json:"question" validate:"max=2000"`
	Choices  []string `json:"choices" validate:"required,min=1,max=10,dive,max=500"`
}

// MethodResult is one scoring method's outcome.
type MethodResult struct {
	Method    domain.MethodKind `json:"method"`
	Answer    string            `json:"answer"`
	Choice    int               `json:"choice"`
	Scores    []int             `json:"scores"`
	Confident bool              `json:"confident"`
	Reason    domain.Rejection  `json:"reason,omitempty"`
}

// AnswerResponse is the body returned by POST /v1/answer.
type AnswerResponse struct {
	ID        string         `json:"id"`
	Reverse   bool           `json:"reverse"`
	Keywords  []string       `json:"keywords"`
	Documents int            `json:"documents"`
	Empty     int            `json:"empty_documents"`
	Results   []MethodResult `json:"results"`
	ElapsedMS int64          `json:"elapsed_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

func (s *Server) handleAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	a, err := s.answerer.Answer(c.Request().Context(), req.Question, req.Choices)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	resp := AnswerResponse{
		ID:        a.Question.ID,
		Reverse:   a.Question.Reverse,
		Keywords:  a.Keywords,
		Documents: a.Documents,
		Empty:     a.Empty,
		Results:   make([]MethodResult, len(a.Results)),
		ElapsedMS: a.Elapsed.Milliseconds(),
	}
	if resp.Keywords == nil {
		resp.Keywords = []string{}
	}
	for i, r := range a.Results {
		resp.Results[i] = MethodResult{
			Method:    r.Method,
			Answer:    r.Answer,
			Choice:    r.Choice,
			Scores:    r.Scores,
			Confident: r.Confident(),
			Reason:    r.Reason,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// handleHealth stays 200 when the cache is down since answering still
// works without it.
func (s *Server) handleHealth(c echo.Context) error {
	if s.health != nil {
		if err := s.health.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusOK, map[string]string{"status": "degraded", "error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// validationMessage renders field errors as "choices: min=1; ...".
func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, len(errs))
	for i, fe := range errs {
		field := strings.ToLower(fe.Field())
		if fe.Param() != "" {
			msgs[i] = fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param())
		} else {
			msgs[i] = fmt.Sprintf("%s: %s", field, fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}
