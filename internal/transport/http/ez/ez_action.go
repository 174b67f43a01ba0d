// Package ez registers typed handlers ("actions") on a gin group: bind the
// input, run the handler, render the envelope.
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"glimmr/internal/domain"
	resp "glimmr/internal/transport/http/response"
)

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param itself
)

// AErr is an error that already knows its response code.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Action is one endpoint. I is bound from the request, O is rendered as data.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	// Status on success; 0 means 200.
	Status int

	// Auth requires the group to have run AuthJWT. Roles further restricts
	// the caller's role claim.
	Auth  bool
	Roles []string

	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth {
			if c.GetString("userId") == "" {
				resp.Abort(c, resp.Error(resp.CodeUnauthorized, "No token provided"))
				return
			}
			if len(a.Roles) > 0 && !hasRole(c.GetString("role"), a.Roles) {
				resp.Abort(c, resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			resp.Abort(c, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			resp.Abort(c, ErrorResp(err))
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// ErrorResp maps an action or domain error to its envelope. Unclassified
// errors become 500 with the cause passed through.
func ErrorResp(err error) resp.Resp {
	var ae *AErr
	if errors.As(err, &ae) {
		r := resp.Error(ae.Code, ae.Msg)
		if ae.Code >= resp.CodeServerError {
			r = r.WithCause(ae.Err)
		}
		return r
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return resp.Error(resp.CodeNotFound, capitalize(err.Error()))
	case errors.Is(err, domain.ErrDuplicateEmail):
		return resp.Error(resp.CodeBadRequest, "User with this email already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return resp.Error(resp.CodeUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrEmptyCart):
		return resp.Error(resp.CodeBadRequest, "Cart is empty")
	case errors.Is(err, domain.ErrInvalidQuantity):
		return resp.Error(resp.CodeBadRequest, capitalize(err.Error()))
	}
	return resp.Error(resp.CodeServerError, "").WithCause(err)
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
