package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// UseJSONFieldNames makes binding errors report the json (or form) name of a
// field instead of the Go struct field name.
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

func detail(msg string) dto.DetailResponse {
	return dto.DetailResponse{Detail: msg}
}

// bindingError renders a ShouldBind failure as a 400.
func bindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := service.FieldErrors{}
		for _, fe := range verrs {
			fields.Add(fe.Field(), validationMessage(fe))
		}
		c.JSON(http.StatusBadRequest, fields)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, service.FieldErrors{typeErr.Field: {"Incorrect type. Expected " + typeErr.Type.String() + "."}})
		return
	}

	c.JSON(http.StatusBadRequest, detail("JSON parse error - "+err.Error()))
}

func validationMessage(fe validator.FieldError) string {
	numeric := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "min":
		if numeric {
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	}
	return "Invalid value."
}

// errorResponder turns service errors into API responses.
type errorResponder struct {
	logger *slog.Logger
}

func (r errorResponder) respond(c *gin.Context, err error) {
	var fields service.FieldErrors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, fields)
	case errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(http.StatusBadRequest, detail(service.ErrAlreadyReviewed.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, detail("Invalid credentials."))
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, detail("Invalid token."))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, detail("You do not have permission to perform this action."))
	case errors.Is(err, service.ErrInvalidPage):
		c.JSON(http.StatusNotFound, detail("Invalid page."))
	case errors.Is(err, service.ErrPlatformNotFound),
		errors.Is(err, service.ErrWatchListNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, detail("Not found."))
	default:
		r.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, detail("internal server error"))
	}
}
