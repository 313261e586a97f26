package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cafekiosk/kiosk/internal/http/apierr"
)

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	h.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
