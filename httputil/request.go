package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/models"
)

// MalformedDateMessage is returned whenever a date query parameter cannot be parsed.
const MalformedDateMessage = "invalid date format, use yyyy-MM-dd"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the `validate` tags of v and converts failures into a ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInternalError("failed to validate request", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return apperror.NewValidationError(strings.Join(msgs, "; "), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// DecodeJSON reads the request body into dst and validates it.
// An absent or null body is reported as a ValidationError naming what was expected.
func DecodeJSON(r *http.Request, dst any, what string) error {
	if r.Body == nil || r.Body == http.NoBody {
		return apperror.NewValidationError(what+" must not be null", nil)
	}
	defer r.Body.Close()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return apperror.NewBadRequestError("failed to read request body", err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return apperror.NewValidationError(what+" must not be null", nil)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apperror.NewBadRequestError("invalid request body: "+err.Error(), err)
	}
	return Validate(dst)
}

// PathID parses a positive int64 chi URL parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequestError(fmt.Sprintf("invalid %s: %q", name, raw), err)
	}
	return id, nil
}

// QueryDate parses an optional YYYY-MM-DD query parameter. A missing parameter yields nil.
func QueryDate(r *http.Request, name string) (*models.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, apperror.NewBadRequestError(MalformedDateMessage, err)
	}
	return &d, nil
}

// RequiredQueryDate is QueryDate for parameters that must be present.
func RequiredQueryDate(r *http.Request, name string) (models.Date, error) {
	d, err := QueryDate(r, name)
	if err != nil {
		return models.Date{}, err
	}
	if d == nil {
		return models.Date{}, apperror.NewBadRequestError(fmt.Sprintf("query parameter %s is required (yyyy-MM-dd)", name), nil)
	}
	return *d, nil
}

// DateRange reads the required start and end query parameters.
func DateRange(r *http.Request) (models.Date, models.Date, error) {
	start, err := RequiredQueryDate(r, "start")
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	end, err := RequiredQueryDate(r, "end")
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	return start, end, nil
}

// Pager reads page and size query parameters with configured bounds.
type Pager struct {
	DefaultSize int
	MaxSize     int
}

// FromRequest returns the requested page, falling back to page 0 and DefaultSize.
// Sizes above MaxSize are capped.
func (p Pager) FromRequest(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	req := models.PageRequest{Page: 0, Size: p.DefaultSize}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return req, apperror.NewBadRequestError(fmt.Sprintf("invalid page: %q", raw), err)
		}
		req.Page = page
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return req, apperror.NewBadRequestError(fmt.Sprintf("invalid size: %q", raw), err)
		}
		req.Size = size
	}
	if p.MaxSize > 0 && req.Size > p.MaxSize {
		req.Size = p.MaxSize
	}
	return req, nil
}
