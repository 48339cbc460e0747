package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption/internal/domain/workflow"
	"pet-adoption/internal/middleware"
)

// ErrorResponse es el cuerpo estándar de error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// StatusFor mapea los tipos de error del dominio a HTTP.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError escribe el error con su status. Los 500 no exponen detalle.
func WriteDomainError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		WriteError(w, status, "internal", "internal error")
		return
	}
	WriteError(w, status, workflow.Kind(err), err.Error())
}

func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return workflow.Invalid("body", "invalid json")
	}
	return nil
}

// RequireUser devuelve el user id autenticado o escribe 401.
func RequireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return "", false
	}
	return claims.UserID, true
}

// RequireAdmin exige rol admin (401 sin identidad, 403 sin rol).
func RequireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return "", false
	}
	if !claims.IsAdmin() {
		WriteError(w, http.StatusForbidden, "forbidden", "forbidden")
		return "", false
	}
	return claims.UserID, true
}

// QueryInt lee un entero opcional de la query. def si falta o es inválido.
func QueryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
