package importer

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Pavement/internal/calc/axles"
)

type Handler struct{}

type CompositionImportResult struct {
	Count       int                `json:"count"`
	Sum         float64            `json:"sum"`
	Composition map[string]float64 `json:"composition"`
}

func (h *Handler) Composition(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	comp, err := ParseComposition(file)
	if err != nil {
		slog.Warn("composition import failed", "tool", "import", "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CompositionImportResult{
		Count:       len(comp),
		Sum:         axles.ToComposition(comp).Sum(),
		Composition: comp,
	})
}
