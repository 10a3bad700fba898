package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipcart/clipcart/internal/httputil"
	"github.com/clipcart/clipcart/internal/probe"
	"github.com/clipcart/clipcart/internal/validate"
	"github.com/clipcart/clipcart/internal/wizard"
)

// wizardFrom fetches the session's in-flight wizard, writing a 404 when
// none exists.
func (s *Server) wizardFrom(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	wiz := sessionFrom(r).Wizard()
	if wiz == nil {
		httputil.WriteError(w, http.StatusNotFound, "no campaign in progress")
		return nil, false
	}
	return wiz, true
}

func wizardStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrClosed),
		errors.Is(err, wizard.ErrWrongStage),
		errors.Is(err, wizard.ErrTypeChosen),
		errors.Is(err, wizard.ErrDetailsGate):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// handleWizardStart opens a fresh campaign wizard, cancelling any
// earlier one in the session.
func (s *Server) handleWizardStart(w http.ResponseWriter, r *http.Request) {
	wiz := sessionFrom(r).StartWizard(s.wizardCfg)
	httputil.WriteJSON(w, http.StatusCreated, wiz.Snapshot())
}

func (s *Server) handleWizardState(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizardFrom(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wiz.Snapshot())
}

func (s *Server) handleWizardCancel(w http.ResponseWriter, r *http.Request) {
	if !sessionFrom(r).EndWizard() {
		httputil.WriteError(w, http.StatusNotFound, "no campaign in progress")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWizardOptions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, wizard.Options())
}

func (s *Server) handleWizardType(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizardFrom(w, r)
	if !ok {
		return
	}

	ct, err := wizard.ParseCampaignType(chi.URLParam(r, "option"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := wiz.ChooseType(ct); err != nil {
		httputil.WriteError(w, wizardStatus(err), err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wiz.Snapshot())
}

type assetRequest struct {
	Ref             string  `json:"ref"`
	DurationSeconds float64 `json:"durationSeconds"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
}

// handleWizardAsset attaches the campaign clip. Metadata comes from the
// client probe; when it is absent and an inspector is configured, the
// server probes the reference itself.
func (s *Server) handleWizardAsset(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizardFrom(w, r)
	if !ok {
		return
	}

	var req assetRequest
	if err := httputil.DecodeJSON(r, &req, 0); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	md := probe.Metadata{
		DurationSeconds: req.DurationSeconds,
		Width:           req.Width,
		Height:          req.Height,
	}
	if md.Width == 0 && md.Height == 0 && s.probe != nil {
		probed, err := s.probe.Inspect(r.Context(), req.Ref)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "could not read video metadata")
			return
		}
		md = probed
	}

	if err := wiz.AttachAsset(req.Ref, md); err != nil {
		httputil.WriteError(w, wizardStatus(err), err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wiz.Snapshot())
}

type wizardStepResponse struct {
	Completed bool         `json:"completed"`
	State     wizard.State `json:"state"`
}

func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizardFrom(w, r)
	if !ok {
		return
	}

	completed, err := wiz.Next()
	if err != nil {
		httputil.WriteError(w, wizardStatus(err), err.Error())
		return
	}
	if completed {
		sessionFrom(r).EndWizard()
	}
	httputil.WriteJSON(w, http.StatusOK, wizardStepResponse{Completed: completed, State: wiz.Snapshot()})
}

func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizardFrom(w, r)
	if !ok {
		return
	}
	if err := wiz.Back(); err != nil {
		httputil.WriteError(w, wizardStatus(err), err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wiz.Snapshot())
}

func (s *Server) handleWizardForm(w http.ResponseWriter, r *http.Request) {
	wiz, ok := s.wizardFrom(w, r)
	if !ok {
		return
	}

	var patch wizard.FormUpdate
	if err := httputil.DecodeJSON(r, &patch, 0); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := wiz.SetForm(patch); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wiz.Snapshot())
}

type limitsResponse struct {
	Fields             map[string]int `json:"fields"`
	MaxDurationSeconds float64        `json:"maxDurationSeconds"`
	AspectTolerance    float64        `json:"aspectTolerance"`
}

// handleLimits publishes the field and asset limits so clients can
// validate before submitting.
func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	cfg := s.wizardCfg
	if cfg.MaxDurationSeconds == 0 {
		cfg = wizard.DefaultConfig()
	}
	httputil.WriteJSON(w, http.StatusOK, limitsResponse{
		Fields:             validate.FieldLimits(),
		MaxDurationSeconds: cfg.MaxDurationSeconds,
		AspectTolerance:    cfg.AspectTolerance,
	})
}
