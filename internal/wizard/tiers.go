package wizard

// TierStatus tracks a simulated encoding output through its lifecycle.
type TierStatus string

const (
	TierPending    TierStatus = "pending"
	TierProcessing TierStatus = "processing"
	TierDone       TierStatus = "done"
)

type Tier struct {
	Available bool       `json:"available"`
	Status    TierStatus `json:"status"`
}

// Tiers holds the SD/HD/4K availability and processing state for one
// uploaded asset. Availability is computed once from the asset's
// resolution and never changes afterward.
type Tiers struct {
	SD    Tier `json:"sd"`
	HD    Tier `json:"hd"`
	FourK Tier `json:"4k"`
}

// Resolution thresholds for tier availability. A tier unlocks when either
// dimension meets its minimum.
const (
	hdMinWidth     = 1280
	hdMinHeight    = 720
	fourKMinWidth  = 3840
	fourKMinHeight = 2160
)

// tiersForResolution computes availability from pixel dimensions. SD is
// always available.
func tiersForResolution(width, height int) Tiers {
	t := Tiers{
		SD:    Tier{Available: true, Status: TierPending},
		HD:    Tier{Status: TierPending},
		FourK: Tier{Status: TierPending},
	}
	if width >= hdMinWidth || height >= hdMinHeight {
		t.HD.Available = true
	}
	if width >= fourKMinWidth || height >= fourKMinHeight {
		t.FourK.Available = true
	}
	return t
}
