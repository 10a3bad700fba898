package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clipcart/clipcart/internal/catalog"
	"github.com/clipcart/clipcart/internal/httputil"
	"github.com/clipcart/clipcart/internal/showroom"
)

type showroomResponse struct {
	Profile showroom.Profile  `json:"profile"`
	Banner  string            `json:"banner"`
	Logo    string            `json:"logo"`
	Tracked bool              `json:"tracked"`
	Drops   []catalog.VideoAd `json:"drops"`
}

// handleShowroom assembles the brand storefront: the profile with the
// session's media overrides applied, the follow state, and the brand's
// catalog shelf.
func (s *Server) handleShowroom(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "brand")
	profile, ok := showroom.For(slug)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "showroom not found")
		return
	}

	sess := sessionFrom(r)
	resp := showroomResponse{
		Profile: profile,
		Banner:  profile.HeaderVideo,
		Logo:    profile.Logo,
		Tracked: sess.Engagement().Tracked(profile.Brand),
		Drops:   s.withLiveCountdown(s.catalog.ByBrand(profile.Brand)),
	}
	if ref, ok := sess.Media().Banner(profile.Slug); ok {
		resp.Banner = ref
	}
	if ref, ok := sess.Media().Logo(profile.Slug); ok {
		resp.Logo = ref
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type bannerRequest struct {
	Ref         string `json:"ref"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// handleSetBanner swaps the showroom header video for this session. The
// upload must be a landscape video; anything else is rejected and the
// current banner stays.
func (s *Server) handleSetBanner(w http.ResponseWriter, r *http.Request) {
	slug := strings.ToLower(chi.URLParam(r, "brand"))
	if _, ok := showroom.For(slug); !ok {
		httputil.WriteError(w, http.StatusNotFound, "showroom not found")
		return
	}

	var req bannerRequest
	if err := httputil.DecodeJSON(r, &req, 0); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := sessionFrom(r).Media().SetBanner(slug, req.Ref, req.ContentType, req.Width, req.Height)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type logoRequest struct {
	Ref         string `json:"ref"`
	ContentType string `json:"contentType"`
}

func (s *Server) handleSetLogo(w http.ResponseWriter, r *http.Request) {
	slug := strings.ToLower(chi.URLParam(r, "brand"))
	if _, ok := showroom.For(slug); !ok {
		httputil.WriteError(w, http.StatusNotFound, "showroom not found")
		return
	}

	var req logoRequest
	if err := httputil.DecodeJSON(r, &req, 0); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := sessionFrom(r).Media().SetLogo(slug, req.Ref, req.ContentType); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
