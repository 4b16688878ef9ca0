package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"gorm.io/gorm"
)

// ErrorHandler is the single place errors become HTTP responses. Handlers
// attach errors with c.Error and never write failure bodies themselves.
// Status mapping: validation and duplicate-key errors 400, missing auth 401,
// not-found 404, everything else 500. Stack detail is echoed only outside
// production.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				log.Printf("panic recovered: %v\n%s", r, stack)
				writeError(c, http.StatusInternalServerError, fmt.Sprintf("%v", r), stack, production)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var verrs validator.ValidationErrors
		var appErr *apperr.Error

		switch {
		case errors.As(err, &verrs):
			writeError(c, http.StatusBadRequest, formatValidationErrors(verrs), "", production)
		case errors.As(err, &appErr):
			writeError(c, appErr.Code, appErr.Message, "", production)
		case errors.Is(err, gorm.ErrRecordNotFound):
			writeError(c, http.StatusNotFound, "Not found", "", production)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			writeError(c, http.StatusBadRequest, "duplicate value for a unique field", "", production)
		case isMalformedInput(err):
			writeError(c, http.StatusBadRequest, malformedInputMessage(err), "", production)
		default:
			if !production {
				log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			}
			writeError(c, http.StatusInternalServerError, err.Error(), "", production)
		}
	}
}

func writeError(c *gin.Context, code int, message, stack string, production bool) {
	if c.Writer.Written() {
		return
	}
	body := gin.H{"message": message}
	if stack != "" && !production {
		body["stack"] = stack
	}
	c.JSON(code, gin.H{"success": false, "error": body})
}

// isMalformedInput reports whether err comes from decoding the request
// rather than from the application: truncated or invalid JSON bodies,
// wrong-typed JSON fields, and unparseable query parameters. These are
// client faults and map to 400 like binding-tag violations.
func isMalformedInput(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &numErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func malformedInputMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Sprintf("%q is not a valid number", numErr.Num)
	}
	return "Request body is not valid JSON"
}

// formatValidationErrors joins every violated field into one message, so a
// request missing several fields reports all of them at once.
func formatValidationErrors(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}

// jsonFieldName lowers the first rune so Go field names read like the JSON
// keys clients sent. Validators registered with json tag names pass through.
func jsonFieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
