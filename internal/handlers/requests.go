package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeRequest is the query of GET /.
type HomeRequest struct {
	Mode string `query:"mode"`
}

// PageRequest addresses one page view.
type PageRequest struct {
	PageID string `param:"id" validate:"required,uuid"`
}

// ModeRequest is the body of a mode switch.
type ModeRequest struct {
	PageID string `param:"id" validate:"required,uuid"`
	Mode   string `form:"mode" validate:"required"`
}

// FieldEventRequest is the body of change and blur events. The field value
// itself travels under the field's input name.
type FieldEventRequest struct {
	PageID string `param:"id" validate:"required,uuid"`
	Form   string `param:"form" validate:"required"`
	Field  string `form:"field" validate:"required"`
}

// FormRequest is the body of a visibility toggle or a submit.
type FormRequest struct {
	PageID       string `param:"id" validate:"required,uuid"`
	Form         string `param:"form" validate:"required"`
	ShowPassword bool   `form:"show_password"`
}

// bindRequest binds and validates req, answering 400 on either failure.
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}
	return nil
}
