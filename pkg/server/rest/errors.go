package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/server"
)

// ErrResponse model info
//
//	@Description	error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

// ErrFromService maps a service error onto its HTTP status.
func ErrFromService(err error) render.Renderer {
	msg := "internal server error"
	var se *server.Error
	if errors.As(err, &se) {
		msg = se.Message()
	}

	resp := &ErrResponse{Err: err, ErrorText: msg, AppCode: int64(server.CodeOf(err))}
	switch server.CodeOf(err) {
	case server.ErrNotFound:
		resp.HTTPStatusCode, resp.StatusText = http.StatusNotFound, "Not found."
	case server.ErrBadParamInput:
		resp.HTTPStatusCode, resp.StatusText = http.StatusBadRequest, "Invalid request."
	case server.ErrUnavailable:
		resp.HTTPStatusCode, resp.StatusText = http.StatusServiceUnavailable, "Service unavailable."
	default:
		resp.HTTPStatusCode, resp.StatusText = http.StatusInternalServerError, "Internal server error."
		resp.ErrorText = "internal server error"
	}
	return resp
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(trans)))
	}
	return errs
}
