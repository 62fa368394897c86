package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"product-catalog/internal/logger"
	"product-catalog/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, unknown ids 404, everything else a logged 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": ve.Message})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "product not found"})
	default:
		logger.Error(ctx, "Request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}
}
