package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"Pavement/internal/auth"
	"Pavement/internal/calc/design"
	"Pavement/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

// signer looks up the engineer behind the request; a report without an
// account is left unsigned.
func (h *Handler) signer(r *http.Request) Signer {
	id, ok := auth.UserID(r.Context())
	if !ok || h.Repo == nil {
		return Signer{}
	}
	p, err := h.Repo.GetProfileByID(r.Context(), id)
	if err != nil {
		slog.Warn("report signer lookup failed", "id", id, "err", err)
		return Signer{}
	}
	return Signer{FullName: p.FullName, License: p.License, Organization: p.Organization}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input design.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := design.Calculate(input)
	if err != nil {
		slog.Warn("report design failed", "tool", "report", "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	meta := NewMeta(h.signer(r))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"memoria-%s.pdf\"", meta.Folio))
	w.Header().Set("X-Report-Folio", meta.Folio)
	if err := Render(w, res, meta); err != nil {
		slog.Error("report rendering failed", "folio", meta.Folio, "err", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	slog.Info("report generated", "folio", meta.Folio, "road", res.Project.Road, "pass", res.Pass)
}
