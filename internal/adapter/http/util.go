package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gamelibrary/internal/app"
	"gamelibrary/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeServiceError maps service errors to status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrGameNotFound), errors.Is(err, app.ErrUnknownUser):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrInvalidReview),
		errors.Is(err, app.ErrInvalidUsername),
		errors.Is(err, app.ErrWeakPassword),
		errors.Is(err, domain.ErrReviewNotLinked):
		status = http.StatusBadRequest
	case errors.Is(err, app.ErrNameNotUnique):
		status = http.StatusConflict
	case errors.Is(err, app.ErrInvalidCredentials), errors.Is(err, app.ErrInvalidToken):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		err = errors.New("internal error")
	}
	writeError(w, status, err)
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, fmt.Errorf("invalid game id %q", r.PathValue("id"))
	}
	return id, nil
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
