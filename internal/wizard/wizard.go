// Package wizard implements the campaign-creation flow: a linear state
// machine from type selection through upload to a four-step form, plus the
// simulated upload-progress and quality-tier pipeline behind it. One
// Session backs one open modal; closing the modal destroys the session and
// everything it scheduled.
package wizard

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/clipcart/clipcart/internal/probe"
	"github.com/clipcart/clipcart/internal/validate"
)

// Stage is the coarse position in the flow.
type Stage string

const (
	StageTypeSelection Stage = "type-selection"
	StageUpload        Stage = "upload"
	StageForm          Stage = "form"
)

// Step is the position within the form stage.
type Step string

const (
	StepDetails       Step = "details"
	StepMerchantLogic Step = "merchant-logic"
	StepChecks        Step = "checks"
	StepVisibility    Step = "visibility"
)

var formSteps = []Step{StepDetails, StepMerchantLogic, StepChecks, StepVisibility}

// Asset is the uploaded creative's reference plus the probed metadata the
// validation gate approved.
type Asset struct {
	Ref             string  `json:"ref"`
	DurationSeconds float64 `json:"durationSeconds"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
}

// Form is the campaign draft. Extra carries type-specific fields (coupon
// code for flash deals, booking link for services, and so on).
type Form struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Thumbnail   string            `json:"thumbnail"`
	Industry    string            `json:"industry"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Config tunes the validation gate and the simulated pipeline.
type Config struct {
	MaxDurationSeconds float64
	AspectTolerance    float64
	ProgressInterval   time.Duration
	ProgressStep       int
	TierDuration       time.Duration
	Clock              clockwork.Clock
}

// DefaultConfig matches the product's upload rules: clips up to three
// minutes, 16:9 within a small tolerance.
func DefaultConfig() Config {
	return Config{
		MaxDurationSeconds: 180,
		AspectTolerance:    0.1,
		ProgressInterval:   300 * time.Millisecond,
		ProgressStep:       20,
		TierDuration:       1500 * time.Millisecond,
		Clock:              clockwork.NewRealClock(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxDurationSeconds <= 0 {
		c.MaxDurationSeconds = d.MaxDurationSeconds
	}
	if c.AspectTolerance <= 0 {
		c.AspectTolerance = d.AspectTolerance
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = d.ProgressInterval
	}
	if c.ProgressStep <= 0 {
		c.ProgressStep = d.ProgressStep
	}
	if c.TierDuration <= 0 {
		c.TierDuration = d.TierDuration
	}
	if c.Clock == nil {
		c.Clock = d.Clock
	}
	return c
}

var (
	ErrClosed      = errors.New("wizard session is closed")
	ErrWrongStage  = errors.New("operation not valid in this stage")
	ErrDetailsGate = errors.New("title and thumbnail are required before continuing")
	ErrTypeChosen  = errors.New("campaign type is already chosen")
)

// Session is one run of the wizard. All methods are safe for concurrent
// use, and every multi-field transition is atomic to observers.
type Session struct {
	cfg Config

	mu             sync.Mutex
	stage          Stage
	step           Step
	campaignType   CampaignType
	asset          *Asset
	uploadProgress int
	tiers          Tiers
	form           Form
	lastError      string
	closed         bool

	// pipelineStop ends the currently-running simulation; a fresh channel
	// is installed each time an asset is accepted.
	pipelineStop chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// NewSession opens a wizard at the type-selection screen.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:   cfg.withDefaults(),
		stage: StageTypeSelection,
		form:  Form{Extra: map[string]string{}},
		done:  make(chan struct{}),
	}
}

// ChooseType picks the creation option and advances to the upload screen.
// The choice is immutable for the rest of the session.
func (s *Session) ChooseType(t CampaignType) error {
	if _, err := ParseCampaignType(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.stage != StageTypeSelection {
		if s.campaignType != "" {
			return ErrTypeChosen
		}
		return ErrWrongStage
	}
	s.campaignType = t
	s.stage = StageUpload
	s.lastError = ""
	return nil
}

// AttachAsset runs the validation gate on a probed asset. On rejection the
// session is unchanged except for a transient error message; the user may
// retry without limit. On acceptance the wizard advances to the form's
// details step and the simulated upload/tier pipeline starts.
func (s *Session) AttachAsset(ref string, md probe.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.stage != StageUpload {
		return ErrWrongStage
	}

	if err := s.validateAsset(ref, md); err != nil {
		s.lastError = err.Error()
		return err
	}

	// Replacing an earlier accepted asset restarts the simulation.
	if s.pipelineStop != nil {
		close(s.pipelineStop)
	}
	s.pipelineStop = make(chan struct{})

	s.asset = &Asset{
		Ref:             ref,
		DurationSeconds: md.DurationSeconds,
		Width:           md.Width,
		Height:          md.Height,
	}
	s.uploadProgress = 0
	s.tiers = tiersForResolution(md.Width, md.Height)
	s.stage = StageForm
	s.step = StepDetails
	s.lastError = ""

	go s.runPipeline(s.pipelineStop)
	return nil
}

func (s *Session) validateAsset(ref string, md probe.Metadata) error {
	if msg := validate.AssetRef(ref); msg != "" {
		return errors.New(msg)
	}
	if md.DurationSeconds > s.cfg.MaxDurationSeconds {
		return fmt.Errorf("video is too long: %.0fs exceeds the %.0fs limit",
			md.DurationSeconds, s.cfg.MaxDurationSeconds)
	}
	if md.Width <= 0 || md.Height <= 0 {
		return errors.New("video has no readable dimensions")
	}
	aspect := float64(md.Width) / float64(md.Height)
	if math.Abs(aspect-16.0/9.0) > s.cfg.AspectTolerance {
		return errors.New("video must be 16:9 landscape")
	}
	return nil
}

// Next advances one step. From the details step it is gated on a selected
// thumbnail and a non-blank title; from the visibility step it completes
// the flow and closes the session.
func (s *Session) Next() (completed bool, err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	if s.stage != StageForm {
		s.mu.Unlock()
		return false, ErrWrongStage
	}

	if s.step == StepDetails && !s.detailsComplete() {
		s.mu.Unlock()
		return false, ErrDetailsGate
	}

	if s.step == StepVisibility {
		s.mu.Unlock()
		s.Close()
		return true, nil
	}

	for i, st := range formSteps {
		if st == s.step {
			s.step = formSteps[i+1]
			break
		}
	}
	s.lastError = ""
	s.mu.Unlock()
	return false, nil
}

// Back moves one step back in the form; from the details step it returns
// to the upload screen. It is not valid outside the form stage.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.stage != StageForm {
		return ErrWrongStage
	}

	if s.step == StepDetails {
		s.stage = StageUpload
		s.step = ""
		return nil
	}
	for i, st := range formSteps {
		if st == s.step {
			s.step = formSteps[i-1]
			break
		}
	}
	return nil
}

// FormUpdate is a partial patch of the campaign draft; nil pointers leave
// the corresponding field untouched.
type FormUpdate struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Thumbnail   *string           `json:"thumbnail"`
	Industry    *string           `json:"industry"`
	Extra       map[string]string `json:"extra"`
}

// SetForm applies a draft patch. Field limits are enforced; a rejected
// patch leaves the draft untouched.
func (s *Session) SetForm(u FormUpdate) error {
	if u.Title != nil {
		if msg := validate.CampaignTitle(*u.Title); msg != "" {
			return errors.New(msg)
		}
	}
	if u.Description != nil {
		if msg := validate.CampaignDescription(*u.Description); msg != "" {
			return errors.New(msg)
		}
	}
	if u.Thumbnail != nil {
		if msg := validate.ThumbnailRef(*u.Thumbnail); msg != "" {
			return errors.New(msg)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.stage != StageForm {
		return ErrWrongStage
	}

	if u.Title != nil {
		s.form.Title = *u.Title
	}
	if u.Description != nil {
		s.form.Description = *u.Description
	}
	if u.Thumbnail != nil {
		s.form.Thumbnail = *u.Thumbnail
	}
	if u.Industry != nil {
		s.form.Industry = *u.Industry
	}
	for k, v := range u.Extra {
		s.form.Extra[k] = v
	}
	return nil
}

func (s *Session) detailsComplete() bool {
	return s.form.Thumbnail != "" && strings.TrimSpace(s.form.Title) != ""
}

// Close cancels the session and all scheduled simulation work. It is
// idempotent; cancel and completion both land here. No pipeline callback
// fires after Close returns.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		if s.pipelineStop != nil {
			close(s.pipelineStop)
			s.pipelineStop = nil
		}
		s.mu.Unlock()
		close(s.done)
	})
}

// Closed reports whether the session has ended.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// State is a point-in-time snapshot of the wizard for rendering.
type State struct {
	Stage          Stage        `json:"stage"`
	Step           Step         `json:"step,omitempty"`
	CampaignType   CampaignType `json:"campaignType,omitempty"`
	Asset          *Asset       `json:"asset,omitempty"`
	UploadProgress int          `json:"uploadProgress"`
	QualityTiers   Tiers        `json:"qualityTiers"`
	Form           Form         `json:"form"`
	CanAdvance     bool         `json:"canAdvance"`
	Error          string       `json:"error,omitempty"`
}

// Snapshot returns the current state. The transient error message is
// consumed by the read.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Stage:          s.stage,
		Step:           s.step,
		CampaignType:   s.campaignType,
		UploadProgress: s.uploadProgress,
		QualityTiers:   s.tiers,
		Form:           s.form,
		Error:          s.lastError,
	}
	if s.asset != nil {
		a := *s.asset
		st.Asset = &a
	}
	switch {
	case s.stage != StageForm:
		st.CanAdvance = s.stage == StageUpload && s.asset != nil
	case s.step == StepDetails:
		st.CanAdvance = s.detailsComplete()
	default:
		st.CanAdvance = true
	}
	s.lastError = ""
	return st
}
