package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/frotaops/frota/internal/metrics"
	"github.com/frotaops/frota/internal/store"
)

// ExportHandler serves the fueling history as a downloadable CSV file.
type ExportHandler struct {
	store *store.Store
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(st *store.Store) *ExportHandler {
	return &ExportHandler{store: st}
}

// HandleCSV streams the CSV export as an attachment.
func (h *ExportHandler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", metrics.ExportFilename))
	io.WriteString(w, metrics.ToCSV(h.store.Snapshot()))
}
