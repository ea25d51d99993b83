package halerrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// body is the JSON error payload: a message plus, for validation failures,
// a field name to reason mapping.
type body struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Respond writes err as a JSON error response and aborts the request.
// Unrecognized errors become a 500 with a generic message.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !As(err, &e) {
		e = Internal.Explain("internal server error").Wrap(err)
	}
	c.AbortWithStatusJSON(e.StatusCode(), body{
		Message: e.Message,
		Errors:  e.FieldMap(),
	})
}

// ValidationFailed writes the 422 body consumers of form views rely on:
// {"message": "Validation error", "errors": {"<field>": "<reason>"}}.
func ValidationFailed(c *gin.Context, fields []FieldError) {
	Respond(c, Unprocessable.Explain("Validation error").WithFields(fields))
}

// BadRequest writes a 400 with the given detail message.
func BadRequest(c *gin.Context, detail string) {
	Respond(c, Invalid.Explain("%s", detail))
}

// NotFoundResponse writes a 404 for a missing resource.
func NotFoundResponse(c *gin.Context) {
	Respond(c, NotFound.Explain("%s", http.StatusText(http.StatusNotFound)))
}
