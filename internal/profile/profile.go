package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"Pavement/internal/auth"
	"Pavement/internal/repo"
)

type ProfileHandler struct {
	Repo repo.Repository
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	targetID := userID
	if idStr, ok := mux.Vars(r)["id"]; ok && idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}
		targetID = id
	}

	prof, err := h.Repo.GetProfileByID(r.Context(), targetID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			slog.Error("get profile failed", "id", targetID, "err", err)
		}
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	// other engineers see the signing data only
	if targetID != userID {
		prof.Email = ""
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prof)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req repo.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.License = strings.TrimSpace(req.License)
	req.Organization = strings.TrimSpace(req.Organization)

	prof, err := h.Repo.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		slog.Error("update profile failed", "id", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prof)
}
