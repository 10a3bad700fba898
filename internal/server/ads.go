package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipcart/clipcart/internal/catalog"
	"github.com/clipcart/clipcart/internal/httputil"
)

type adDetailResponse struct {
	Ad      catalog.VideoAd   `json:"ad"`
	Related []catalog.VideoAd `json:"related"`
	Tracked bool              `json:"tracked"`
	Clipped bool              `json:"clipped"`
}

// handleAdDetail returns everything the detail screen needs in one
// round trip: the ad with its live countdown, the related shelf, and the
// viewer's toggles for it.
func (s *Server) handleAdDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ad, ok := s.catalog.Get(id)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "ad not found")
		return
	}
	if ad.TimeLeft != "" {
		ad.TimeLeft = s.timeLeft(ad)
	}

	eng := sessionFrom(r).Engagement()
	httputil.WriteJSON(w, http.StatusOK, adDetailResponse{
		Ad:      ad,
		Related: s.withLiveCountdown(s.catalog.Related(id)),
		Tracked: eng.Tracked(ad.Brand.Name),
		Clipped: eng.Clipped(ad.ID),
	})
}

// handleRecordView counts one playback toward the merchant dashboard.
// The session id is the unique-viewer key.
func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.Get(id); !ok {
		httputil.WriteError(w, http.StatusNotFound, "ad not found")
		return
	}
	s.recorder.RecordView(id, sessionFrom(r).ID, r.UserAgent())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordCTA(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.Get(id); !ok {
		httputil.WriteError(w, http.StatusNotFound, "ad not found")
		return
	}
	s.recorder.RecordCTAClick(id)
	w.WriteHeader(http.StatusNoContent)
}
