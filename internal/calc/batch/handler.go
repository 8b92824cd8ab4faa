package batch

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Pavement/internal/calc/design"
)

type Handler struct {
	// Observe, when set, sees every run of a successful batch.
	Observe func(design.Result)
}

func (h *Handler) Design(w http.ResponseWriter, r *http.Request) {
	var input DesignBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateDesigns(input)
	if err != nil {
		slog.Warn("batch failed", "tool", "batch", "items", len(input.Items), "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Observe != nil {
		for _, r := range res.Results {
			h.Observe(r)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
