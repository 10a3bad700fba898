// Package probe inspects media assets for the campaign wizard's validation
// gate. The wizard only needs duration and pixel dimensions; anything
// heavier belongs to a real ingest pipeline.
package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Metadata is the minimal shape the wizard validates against.
type Metadata struct {
	DurationSeconds float64 `json:"durationSeconds"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
}

// Inspector resolves an asset reference to its metadata. Implementations
// treat inspection as a single call with a result-or-error outcome.
type Inspector interface {
	Inspect(ctx context.Context, ref string) (Metadata, error)
}

// FFProbe inspects local files with the ffprobe binary.
type FFProbe struct{}

func (FFProbe) Inspect(ctx context.Context, ref string) (Metadata, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height:format=duration",
		"-of", "default=noprint_wrappers=1",
		ref,
	)
	output, err := cmd.Output()
	if err != nil {
		return Metadata{}, fmt.Errorf("ffprobe %s: %w", ref, err)
	}
	return parseFFProbeOutput(string(output))
}

func parseFFProbeOutput(output string) (Metadata, error) {
	var md Metadata
	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		switch key {
		case "width":
			md.Width, _ = strconv.Atoi(value)
		case "height":
			md.Height, _ = strconv.Atoi(value)
		case "duration":
			md.DurationSeconds, _ = strconv.ParseFloat(value, 64)
		}
	}
	if md.Width <= 0 || md.Height <= 0 {
		return Metadata{}, fmt.Errorf("no video stream dimensions in probe output")
	}
	if md.DurationSeconds <= 0 {
		return Metadata{}, fmt.Errorf("no duration in probe output")
	}
	return md, nil
}

// Static serves metadata from a fixed table, keyed by asset reference.
// Used in tests and wherever the caller already probed the asset.
type Static map[string]Metadata

func (s Static) Inspect(_ context.Context, ref string) (Metadata, error) {
	md, ok := s[ref]
	if !ok {
		return Metadata{}, fmt.Errorf("unknown asset %q", ref)
	}
	return md, nil
}
