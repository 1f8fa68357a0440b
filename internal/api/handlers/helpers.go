package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeRouteError renders a classified optimization failure with its
// contract error kind in the body.
func writeRouteError(w http.ResponseWriter, r *http.Request, re *domain.RouteError) {
	writeJSON(w, r, statusForKind(re.Kind), dto.ErrorResponse{
		Error:   string(re.Kind),
		Message: re.Msg,
	})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrTooManyWaypoints:
		return http.StatusUnprocessableEntity
	case domain.ErrTimeout:
		return http.StatusRequestTimeout
	default:
		return http.StatusBadRequest
	}
}
