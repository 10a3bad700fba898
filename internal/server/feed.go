package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipcart/clipcart/internal/catalog"
	"github.com/clipcart/clipcart/internal/httputil"
)

type feedResponse struct {
	Category catalog.Category  `json:"category"`
	Label    string            `json:"label"`
	Ads      []catalog.VideoAd `json:"ads"`
	Total    int               `json:"total"`

	// EmptyHint is set when the filter matches nothing, so clients can
	// offer a reset back to the full grid.
	EmptyHint string `json:"emptyHint,omitempty"`
}

// handleFeed returns the grid for the session's current category filter,
// with flash-deal countdowns replaced by their live values.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	cat := sess.NavState().Category

	ads := s.withLiveCountdown(s.catalog.Filtered(cat))
	resp := feedResponse{
		Category: cat,
		Label:    cat.Label(),
		Ads:      ads,
		Total:    len(ads),
	}
	if len(ads) == 0 {
		resp.EmptyHint = "No drops match " + cat.Label() + ". Switch to All Drops to see everything."
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type categoryItem struct {
	ID    catalog.Category `json:"id"`
	Label string           `json:"label"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := catalog.Categories()
	items := make([]categoryItem, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryItem{ID: c, Label: c.Label()})
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := catalog.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := sessionFrom(r)
	sess.SelectCategory(cat)
	httputil.WriteJSON(w, http.StatusOK, sess.NavState())
}
