package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/saeidalz13/battleship-twist/db"
	"github.com/saeidalz13/battleship-twist/db/sqlc"
	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

type RespHealth struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Matches  int    `json:"matches"`
}

// RespSaveSummary describes a save slot without restoring it.
type RespSaveSummary struct {
	Slot      string    `json:"slot"`
	MatchUuid string    `json:"match_uuid"`
	Mode      string    `json:"mode"`
	Round     int       `json:"round"`
	SavedAt   time.Time `json:"saved_at"`
}

// NewRouter serves the table websocket plus the plain HTTP endpoints.
func NewRouter(rp *RequestProcessor) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/battleship", rp).Methods(http.MethodGet)
	router.HandleFunc("/healthz", rp.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/saves/{slot}", rp.handleSaveSummary).Methods(http.MethodGet)
	return router
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

func (rp *RequestProcessor) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RespHealth{
		Status:   "ok",
		Sessions: rp.sessionManager.Count(),
		Matches:  rp.matchManager.Count(),
	})
}

func (rp *RequestProcessor) handleSaveSummary(w http.ResponseWriter, r *http.Request) {
	if rp.store == nil {
		http.Error(w, cerr.ErrNoSnapshotStore.Error(), http.StatusNotFound)
		return
	}

	slot, err := db.NormalizeSlot(mux.Vars(r)["slot"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	saved, err := rp.store.LoadSnapshot(ctx, slot)
	switch {
	case errors.Is(err, cerr.ErrSnapshotNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		log.Println(err)
		http.Error(w, "could not read save slot", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, RespSaveSummary{
		Slot:      saved.Slot,
		MatchUuid: saved.MatchUuid,
		Mode:      saved.Mode,
		Round:     saved.Round,
		SavedAt:   saved.SavedAt,
	})
}
