package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipcart/clipcart/internal/httputil"
)

func (s *Server) handleEngagement(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, sessionFrom(r).Engagement().Snapshot())
}

type toggleResponse struct {
	On bool `json:"on"`
}

// handleToggleTrack flips the follow state for a brand and reports the
// new value.
func (s *Server) handleToggleTrack(w http.ResponseWriter, r *http.Request) {
	brand := chi.URLParam(r, "brand")
	if brand == "" {
		httputil.WriteError(w, http.StatusBadRequest, "brand is required")
		return
	}
	on := sessionFrom(r).Engagement().ToggleTrack(brand)
	httputil.WriteJSON(w, http.StatusOK, toggleResponse{On: on})
}

// handleToggleClip flips the saved state of a deal. Clips are scoped to
// known ads so stale ids do not pile up in the wallet.
func (s *Server) handleToggleClip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.Get(id); !ok {
		httputil.WriteError(w, http.StatusNotFound, "ad not found")
		return
	}
	on := sessionFrom(r).Engagement().ToggleClip(id)
	httputil.WriteJSON(w, http.StatusOK, toggleResponse{On: on})
}
