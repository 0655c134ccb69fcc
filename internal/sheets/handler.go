package sheets

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	sync *SyncService
}

func NewHandler(sync *SyncService) *Handler {
	return &Handler{sync: sync}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/sheets/sync/parametros", h.SyncParameters).Methods("POST")
	router.HandleFunc("/api/sheets/solped/publicar", h.PublishSolped).Methods("POST")
	router.HandleFunc("/api/sheets/stock/preview", h.PreviewStock).Methods("GET")
}

func (h *Handler) SyncParameters(w http.ResponseWriter, r *http.Request) {
	count, err := h.sync.SyncParameters(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("sync failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"rows": count})
}

func (h *Handler) PublishSolped(w http.ResponseWriter, r *http.Request) {
	count, err := h.sync.PublishSolped(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("publish failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"rows": count})
}

// PreviewStock returns the first rows of the stock sheet, enough to verify
// the upload landed with the expected columns.
func (h *Handler) PreviewStock(w http.ResponseWriter, r *http.Request) {
	records, err := h.sync.LoadStock(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("load failed: %v", err), http.StatusInternalServerError)
		return
	}

	const previewLimit = 20
	if len(records) > previewLimit {
		records = records[:previewLimit]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
