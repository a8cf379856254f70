// Package httputil holds the JSON envelope helpers every handler shares.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "supplyledger/pkg/domain-errors"
)

// maxBodyBytes caps request bodies; token class features are the largest field.
const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeValidation,
		dErrors.CodeInvalidRole, dErrors.CodeInvalidStatus, dErrors.CodeInvalidName,
		dErrors.CodeInvalidAmount, dErrors.CodeSelfTransfer:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeAlreadyRegistered, dErrors.CodeNotPending:
		return http.StatusConflict
	case dErrors.CodeNotRegistered, dErrors.CodeNotApproved, dErrors.CodeInsufficientBalance,
		dErrors.CodeInvalidRoleFlow, dErrors.CodeRoleCannotMint, dErrors.CodeParentNotFound,
		dErrors.CodeParentKindMismatch, dErrors.CodeUnexpectedParent:
		return http.StatusUnprocessableEntity
	case dErrors.CodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the JSON error envelope for err. Internal errors never
// expose their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	description := ""
	if de, ok := dErrors.From(err); ok {
		code = de.Code
		description = de.Message
	}
	status := StatusFor(code)
	if status == http.StatusInternalServerError {
		code = dErrors.CodeInternal
		description = ""
	}
	WriteJSON(w, status, errorResponse{Error: string(code), ErrorDescription: description})
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes a bounded request body into dst and runs struct validation.
//
// Errors: CodeBadRequest for malformed JSON, CodeValidation when a validate tag fails.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return dErrors.New(dErrors.CodeValidation, describe(verrs))
		}
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
	}
	return nil
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" failed "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}
