package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/novabank/docgen/internal/adapter/http/dto"
	"github.com/novabank/docgen/internal/adapter/http/middleware"
	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/export"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeFile streams a generated document as an attachment download.
func writeFile(w http.ResponseWriter, file *export.File) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrDepositNotFound),
		errors.Is(err, domain.ErrCertificateMissing),
		errors.Is(err, domain.ErrKYCProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrEmptyDocument),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrKYCStepOutOfOrder),
		errors.Is(err, domain.ErrKYCStepNotFailed),
		errors.Is(err, domain.ErrKYCAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrRateUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses a YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, errors.New("missing " + key + " parameter")
	}
	return time.Parse("2006-01-02", val)
}

// parseFormatQuery parses the format query parameter, defaulting to PDF.
func parseFormatQuery(r *http.Request) (export.Format, error) {
	val := r.URL.Query().Get("format")
	if val == "" {
		return export.FormatPDF, nil
	}
	return export.ParseFormat(val)
}

// endOfDay widens an inclusive YYYY-MM-DD upper bound to the last instant
// of that day.
const endOfDay = 24*time.Hour - time.Nanosecond

// userFromRequest returns the authenticated user, if any.
func userFromRequest(r *http.Request) (*domain.User, bool) {
	return middleware.GetUserFromContext(r.Context())
}

// requestUserID resolves the acting user: the authenticated user when auth
// is enabled, otherwise the user_id query parameter (dev mode only).
func requestUserID(r *http.Request) string {
	if user, ok := userFromRequest(r); ok {
		return user.ID
	}
	return r.URL.Query().Get("user_id")
}
