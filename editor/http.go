package editor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterHTTP registers the editor REST API on a chi router.
func (e *Editor) RegisterHTTP(r chi.Router) {
	r.Get("/api/v1/content", e.handleGetContent)
	r.Post("/api/v1/content", e.handleSetContent)
	r.Post("/api/v1/insert", e.handleInsert)
	r.Get("/api/v1/darkmode", e.handleGetDarkMode)
	r.Post("/api/v1/darkmode", e.handleSetDarkMode)
	r.Get("/api/v1/selection", e.handleGetSelection)
	r.Get("/api/v1/markdown", e.handleMarkdown)
	r.Get("/api/v1/snapshots", e.handleListSnapshots)
	r.Post("/api/v1/snapshots", e.handleSaveSnapshot)
	r.Post("/api/v1/snapshots/{id}/restore", e.handleRestoreSnapshot)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type contentPayload struct {
	HTML string `json:"html"`
}

func (e *Editor) handleGetContent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contentPayload{HTML: e.Content()})
}

func (e *Editor) handleSetContent(w http.ResponseWriter, r *http.Request) {
	var req contentPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	e.SetContent(req.HTML)
	writeJSON(w, http.StatusOK, contentPayload{HTML: e.Content()})
}

func (e *Editor) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req contentPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	e.InsertContent(req.HTML)
	writeJSON(w, http.StatusOK, contentPayload{HTML: e.Content()})
}

type darkModePayload struct {
	Dark bool `json:"dark"`
}

func (e *Editor) handleGetDarkMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, darkModePayload{Dark: e.IsDarkMode()})
}

func (e *Editor) handleSetDarkMode(w http.ResponseWriter, r *http.Request) {
	var req darkModePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	e.SetDarkMode(req.Dark)
	writeJSON(w, http.StatusOK, darkModePayload{Dark: e.IsDarkMode()})
}

// selectionView is the wire shape of a resolved selection descriptor.
type selectionView struct {
	Type            string           `json:"type"`
	RangeCount      int              `json:"range_count"`
	AreAllCollapsed bool             `json:"are_all_collapsed"`
	HasTable        bool             `json:"has_table"`
	Coordinates     *CellCoordinates `json:"coordinates,omitempty"`
}

func (e *Editor) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	sel := e.Selection()
	view := selectionView{
		Type:            "normal",
		RangeCount:      len(sel.Ranges),
		AreAllCollapsed: sel.AreAllCollapsed,
		HasTable:        sel.Table != nil,
		Coordinates:     sel.Coordinates,
	}
	if sel.Type == SelectionTable {
		view.Type = "table"
	}
	writeJSON(w, http.StatusOK, view)
}

func (e *Editor) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	md, err := e.Markdown()
	if err != nil {
		http.Error(w, "Markdown export failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"markdown": md})
}

func (e *Editor) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	snaps, err := e.ListSnapshots(r.Context(), limit)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": snaps, "count": len(snaps)})
}

func (e *Editor) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := e.SaveSnapshot(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (e *Editor) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := e.RestoreSnapshot(r.Context(), id)
	if errors.Is(err, ErrSnapshotNotFound) {
		http.Error(w, "Snapshot not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, contentPayload{HTML: e.Content()})
}
