package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/server/middleware"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

const passwordTooLongMessage = "Password must be at most 72 bytes"

// Options carries settings shared by every handler.
type Options struct {
	Logger *slog.Logger
	// Production hides error details from 500 responses.
	Production bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// writeJSON serializes v as JSON and writes it to the response with the given
// HTTP status code. The Content-Type header is set to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error response using the standard error
// envelope. The optional ctx map provides additional context fields.
func writeError(w http.ResponseWriter, code int, message string, ctx ...map[string]interface{}) {
	var ctxMap map[string]interface{}
	if len(ctx) > 0 {
		ctxMap = ctx[0]
	}
	writeJSON(w, code, model.ErrorResponse{
		Error: model.ErrorDetail{
			Code:    code,
			Message: message,
			Context: ctxMap,
		},
	})
}

// writeServerError logs err with the request ID and answers 500. The error
// text is included as context.details outside production.
func writeServerError(w http.ResponseWriter, r *http.Request, opts Options, message string, err error) {
	opts.logger().ErrorContext(r.Context(), message,
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	if opts.Production {
		writeError(w, http.StatusInternalServerError, message)
		return
	}
	writeError(w, http.StatusInternalServerError, message, map[string]interface{}{
		"details": err.Error(),
	})
}

// readJSON decodes the request body as JSON into v. The body is closed after
// decoding regardless of success or failure.
func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	defer r.Body.Close()
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return errors.New("request body is empty")
	}
	return err
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// failedTags returns the validator tags that failed per JSON field name.
// A nil map means v is valid.
func failedTags(v interface{}) (map[string]string, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	failed := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		failed[fe.Field()] = fe.Tag()
	}
	return failed, nil
}

func hasTag(failed map[string]string, tag string) bool {
	for _, t := range failed {
		if t == tag {
			return true
		}
	}
	return false
}
