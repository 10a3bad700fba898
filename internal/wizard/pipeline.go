package wizard

// The upload-progress and quality-tier sequences are timed simulations.
// This is the seam where a real ingest/transcode pipeline would attach;
// the ordering contract (progress to 100, then SD, then HD, then 4K,
// strictly sequential) mirrors a real pipeline's dependency order.

// runPipeline drives one accepted asset's simulation. stop belongs to this
// run; a replacement upload or session close ends it, and no state mutation
// happens after that.
func (s *Session) runPipeline(stop chan struct{}) {
	ticker := s.cfg.Clock.NewTicker(s.cfg.ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
		}
		if s.advanceUpload(stop) {
			break
		}
	}

	s.runTier(stop, tierSD)
	if s.tierAvailable(tierHD) {
		s.runTier(stop, tierHD)
	}
	if s.tierAvailable(tierFourK) {
		s.runTier(stop, tierFourK)
	}
}

// advanceUpload bumps progress by one step and reports whether it reached
// 100. Progress is monotonic within a run.
func (s *Session) advanceUpload(stop chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(stop) {
		return true
	}
	s.uploadProgress += s.cfg.ProgressStep
	if s.uploadProgress >= 100 {
		s.uploadProgress = 100
		return true
	}
	return false
}

type tierID int

const (
	tierSD tierID = iota
	tierHD
	tierFourK
)

func (s *Session) tierAvailable(id tierID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch id {
	case tierHD:
		return s.tiers.HD.Available
	case tierFourK:
		return s.tiers.FourK.Available
	default:
		return true
	}
}

func (s *Session) runTier(stop chan struct{}, id tierID) {
	s.setTierStatus(stop, id, TierProcessing)
	select {
	case <-stop:
		return
	case <-s.cfg.Clock.After(s.cfg.TierDuration):
	}
	s.setTierStatus(stop, id, TierDone)
}

func (s *Session) setTierStatus(stop chan struct{}, id tierID, status TierStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(stop) {
		return
	}
	switch id {
	case tierSD:
		s.tiers.SD.Status = status
	case tierHD:
		s.tiers.HD.Status = status
	case tierFourK:
		s.tiers.FourK.Status = status
	}
}

// stale reports whether this pipeline run has been superseded or the
// session closed. Callers hold s.mu.
func (s *Session) stale(stop chan struct{}) bool {
	return s.closed || s.pipelineStop != stop
}
