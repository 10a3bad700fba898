package server

import (
	"net/http"

	"github.com/clipcart/clipcart/internal/httputil"
	"github.com/clipcart/clipcart/internal/merchant"
)

// handleDashboard returns the merchant analytics snapshot. Titles come
// from the catalog so the dashboard survives ads recorded before a
// catalog reload.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash := s.recorder.Snapshot(func(adID string) (string, bool) {
		ad, ok := s.catalog.Get(adID)
		return ad.Title, ok
	})
	httputil.WriteJSON(w, http.StatusOK, dash)
}

func (s *Server) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, merchant.Campaigns())
}
