package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipcart/clipcart/internal/httputil"
	"github.com/clipcart/clipcart/internal/session"
)

func (s *Server) handleNavState(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, sessionFrom(r).NavState())
}

// handleSelectAd opens the detail view. An unknown id is a no-op for the
// navigation: the response is a 404 carrying the unchanged state.
func (s *Server) handleSelectAd(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.SelectAd(s.catalog, chi.URLParam(r, "id")); err != nil {
		httputil.WriteJSON(w, http.StatusNotFound, sess.NavState())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.NavState())
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	view, err := session.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := sessionFrom(r)
	sess.NavigateTo(view)
	httputil.WriteJSON(w, http.StatusOK, sess.NavState())
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Back()
	httputil.WriteJSON(w, http.StatusOK, sess.NavState())
}
