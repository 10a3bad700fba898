package catalog

// Filter returns the ads matching the category, preserving the catalog's
// relative order. CategoryAll returns a copy of the input. An empty result
// is a normal outcome, never an error.
func Filter(ads []VideoAd, c Category) []VideoAd {
	out := make([]VideoAd, 0, len(ads))
	for _, ad := range ads {
		if c.Matches(ad) {
			out = append(out, ad)
		}
	}
	return out
}
