package handler

import (
	"github.com/labstack/echo/v4"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Envelope is the response body of every API route, success or failure.
type Envelope struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Token  string `json:"token,omitempty"`
}

func respond(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, Envelope{Status: StatusSuccess, Msg: msg, Data: data})
}

func respondToken(c echo.Context, code int, msg, token string) error {
	return c.JSON(code, Envelope{Status: StatusSuccess, Msg: msg, Token: token})
}

// Fail renders a failure envelope. Used by the central error handler.
func Fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, Envelope{Status: StatusFail, Msg: msg})
}
