package server

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/observability"
)

// ErrResponse is the JSON body of every error reply.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	Code       string `json:"code,omitempty"`
	ErrorText  string `json:"error,omitempty"`
}

// Render sets the response status.
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrFrom maps a coded error onto an HTTP status.
func ErrFrom(err error) *ErrResponse {
	status := statusOf(err)
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Code:           string(errors.GetCode(err)),
		ErrorText:      errors.UserMessage(err),
	}
}

// ErrInternalServerError hides the cause from the client.
func ErrInternalServerError(err error) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		Code:           string(errors.ErrCodeInternal),
		ErrorText:      "internal error",
	}
}

func statusOf(err error) int {
	if errors.Is(err, errors.ErrCodeChartTooSmall) {
		return http.StatusUnprocessableEntity
	}
	switch errors.KindOf(err) {
	case errors.KindInvalid:
		return http.StatusBadRequest
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindUnavailable:
		return http.StatusServiceUnavailable
	case errors.KindUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	resp := ErrFrom(err)
	if resp.HTTPStatusCode == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		resp = ErrInternalServerError(err)
	}
	_ = render.Render(w, r, resp)
}
