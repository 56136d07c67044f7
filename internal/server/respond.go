package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/praveenr14083/studygen/internal/content"
	"github.com/praveenr14083/studygen/internal/insights"
	"github.com/praveenr14083/studygen/internal/llm"
	"github.com/praveenr14083/studygen/internal/quiz"
)

const maxBodyBytes = 1 << 20

var (
	errBadRequest = errors.New("bad request")
	errNoQuiz     = errors.New("no quiz has been generated in this session")
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error     string `json:"error"`
	Missing   []int  `json:"missing,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode JSON response", "error", err)
	}
}

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	var (
		timeout   *llm.ErrTimeout
		rateLimit *llm.ErrRateLimit
		rejected  *llm.ErrRequestRejected
	)
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, content.ErrEmptyTopic),
		errors.Is(err, content.ErrEmptyContent),
		errors.Is(err, content.ErrEmptyLanguage),
		errors.Is(err, quiz.ErrInvalidQuestionID),
		errors.Is(err, quiz.ErrInvalidChoice),
		errors.Is(err, insights.ErrMissingColumn),
		errors.Is(err, insights.ErrEmptyInventory),
		errors.As(err, &rejected):
		return http.StatusBadRequest
	case errors.Is(err, errNoQuiz):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrParseFailed),
		errors.Is(err, quiz.ErrIncompleteAnswers):
		return http.StatusUnprocessableEntity
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, llm.ErrRemoteCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	}

	var incomplete *quiz.IncompleteAnswersError
	if errors.As(err, &incomplete) {
		body.Missing = incomplete.Missing
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
		if status == http.StatusInternalServerError {
			body.Error = "internal error"
		}
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	respondJSON(w, status, body)
}

// decode reads a JSON body into v and validates it. Failures wrap
// errBadRequest.
func (s *Server) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed %q", errBadRequest, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
