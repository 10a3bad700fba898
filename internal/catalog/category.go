package catalog

import "fmt"

// Category is a feed filter tag. The zero-value-like CategoryAll is the
// identity filter.
type Category string

const (
	CategoryAll        Category = "all"
	CategoryEndingSoon Category = "ending-soon"
	CategoryCoupons    Category = "coupons"
	CategoryCinematic  Category = "cinematic"
	CategoryTech       Category = "tech"
	CategoryFashion    Category = "fashion"
	CategoryHome       Category = "home"
	CategoryNewDrops   Category = "new-drops"
	CategoryNearMe     Category = "near-me"
)

var categoryLabels = map[Category]string{
	CategoryAll:        "All",
	CategoryEndingSoon: "Ending Soon",
	CategoryCoupons:    "Coupons",
	CategoryCinematic:  "Cinematic",
	CategoryTech:       "Tech",
	CategoryFashion:    "Fashion",
	CategoryHome:       "Home",
	CategoryNewDrops:   "New Drops",
	CategoryNearMe:     "Near Me",
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryEndingSoon,
		CategoryCoupons,
		CategoryCinematic,
		CategoryTech,
		CategoryFashion,
		CategoryHome,
		CategoryNewDrops,
		CategoryNearMe,
	}
}

// ParseCategory validates a category slug from a URL or request body.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Label returns the user-facing name for the category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Matches reports whether the ad belongs to the category. The predicate
// table mirrors the feed's filter chips: ending-soon keys off a live
// countdown, near-me off a pinned location, the rest off explicit tags.
func (c Category) Matches(ad VideoAd) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryEndingSoon:
		return ad.TimeLeft != ""
	case CategoryCoupons:
		return ad.HasCoupon
	case CategoryCinematic:
		return ad.Style == StyleCinematic
	case CategoryTech:
		return ad.Industry == IndustryTech
	case CategoryFashion:
		return ad.Industry == IndustryFashion
	case CategoryHome:
		return ad.Industry == IndustryHome
	case CategoryNewDrops:
		return ad.IsNewDrop
	case CategoryNearMe:
		return ad.Location != ""
	default:
		return false
	}
}
