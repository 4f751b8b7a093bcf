package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the envelope every non-2xx response carries.
type Err struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Msg        string `json:"msg"`
}

func (e *Err) Error() string {
	return e.Msg
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.String("code", err.Code),
			zap.String("msg", err.Msg),
		)
		// Internal details stay in the logs.
		err.Msg = "internal server error"
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func NewErr(statusCode int, code string, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Code:       code,
		Msg:        err.Error(),
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, "BAD_REQUEST", err)
}

func ErrUnauthorized(err error) *Err {
	return NewErr(http.StatusUnauthorized, "INVALID_TOKEN", err)
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, "PERMISSION_DENIED", err)
}

func ErrBlockedUser(err error) *Err {
	return NewErr(http.StatusForbidden, "BLOCKED_USER", err)
}

func ErrNotFound(err error) *Err {
	return NewErr(http.StatusNotFound, "NOT_FOUND", err)
}

func ErrConflict(code string, err error) *Err {
	return NewErr(http.StatusConflict, code, err)
}

func ErrCannotVoteOwnTopic(err error) *Err {
	return NewErr(http.StatusBadRequest, "CANNOT_VOTE_OWN_TOPIC", err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "INTERNAL_ERROR", err)
}
