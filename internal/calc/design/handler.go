package design

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	// Observe, when set, sees every successful run.
	Observe func(Result)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		slog.Warn("design failed", "tool", "design", "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Observe != nil {
		h.Observe(res)
	}
	slog.Debug("design done", "tool", "design", "road", res.Project.Road, "pass", res.Pass)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
