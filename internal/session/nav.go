package session

import (
	"fmt"

	"github.com/clipcart/clipcart/internal/catalog"
)

// View is a top-level screen of the app.
type View string

const (
	ViewHome     View = "home"
	ViewDetail   View = "detail"
	ViewMerchant View = "merchant"
	ViewShowroom View = "showroom"
	ViewNearby   View = "nearby"
	ViewWallet   View = "wallet"
	ViewUpdates  View = "updates"
	ViewProfile  View = "profile"
)

// ParseView accepts the screens reachable by direct navigation. Detail is
// deliberately absent; it is only entered through ad selection so the
// screen always has an ad to show.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewHome, ViewMerchant, ViewShowroom, ViewNearby, ViewWallet, ViewUpdates, ViewProfile:
		return v, nil
	case ViewDetail:
		return "", fmt.Errorf("view %q requires an ad selection", s)
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}

// Nav tracks where the viewer is in the app. The fields are private so a
// detail view without a selected ad cannot be constructed.
type Nav struct {
	view     View
	category catalog.Category
	adID     string
}

func newNav() Nav {
	return Nav{view: ViewHome, category: catalog.CategoryAll}
}

func (n *Nav) View() View                 { return n.view }
func (n *Nav) Category() catalog.Category { return n.category }
func (n *Nav) SelectedAd() (string, bool) { return n.adID, n.adID != "" }

// selectAd moves to the detail view. The caller has already checked that
// the ad exists.
func (n *Nav) selectAd(id string) {
	n.view = ViewDetail
	n.adID = id
}

// selectCategory switches the feed filter and returns to the grid.
func (n *Nav) selectCategory(c catalog.Category) {
	n.category = c
	n.view = ViewHome
	n.adID = ""
}

// navigateTo switches screens. Leaving the detail view drops the
// selection so a later return to detail goes through selectAd again.
func (n *Nav) navigateTo(v View) {
	n.view = v
	n.adID = ""
}

// back always lands on home. The app has no deeper history stack; every
// screen is one hop from the grid.
func (n *Nav) back() {
	n.view = ViewHome
	n.adID = ""
}
