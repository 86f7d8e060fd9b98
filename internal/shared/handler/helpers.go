package handler

import (
	"net/http"

	sharedValidator "github.com/cufc/member-api/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape of the API:
// {success, data?, error?, errors?, count?}.
type Envelope struct {
	Success bool                         `json:"success"`
	Count   *int                         `json:"count,omitempty"`
	Data    any                          `json:"data,omitempty"`
	Error   string                       `json:"error,omitempty"`
	Errors  []sharedValidator.FieldError `json:"errors,omitempty"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// List sends a 200 success envelope carrying a collection and its count.
func List(c *gin.Context, count int, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Fail sends a failure envelope with the given status and message, recording
// err on the context for the logging middleware.
//
// Usage:
//
//	if err := service.DoSomething(ctx); err != nil {
//	    handler.Fail(c, http.StatusInternalServerError, err, err.Error())
//	    return
//	}
func Fail(c *gin.Context, status int, err error, message string) {
	if err != nil {
		c.Error(err)
	}
	c.JSON(status, Envelope{Success: false, Error: message})
}

// AbortUnauthorized short-circuits the request with the standard 401 envelope.
func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Success: false,
		Error:   "Unauthorized",
	})
}

// BindJSON parses and validates a JSON request body.
// Returns true if binding succeeded, false if failed (response already sent):
// 422 with per-field messages for validation failures, 400 for anything that
// could not be parsed at all.
//
// Usage:
//
//	var req CreateMemberRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// Add error to context for middleware logging
		c.Error(err)

		if fieldErrors, ok := sharedValidator.ToFieldErrors(err); ok {
			c.JSON(http.StatusUnprocessableEntity, Envelope{
				Success: false,
				Errors:  fieldErrors,
			})
		} else {
			// JSON parsing error or other binding errors
			c.JSON(http.StatusBadRequest, Envelope{
				Success: false,
				Error:   "Invalid request body",
			})
		}
		return false
	}
	return true
}
