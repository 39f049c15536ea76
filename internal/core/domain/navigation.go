package domain

// NavItem is a single navigable entry in the application shell. Icon is a
// capability tag resolved to a glyph by the presentation layer; this service
// only guarantees the tag is stable per capability.
type NavItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
}

// NavGroup is an ordered collection of NavItems under a section heading.
// Item order is display order.
type NavGroup struct {
	Title string    `json:"title"`
	Items []NavItem `json:"items"`
}

// Clone returns a deep copy of the group. Resolved navigation sets are handed
// out by value so callers can never mutate the shared catalog.
func (g NavGroup) Clone() NavGroup {
	items := make([]NavItem, len(g.Items))
	copy(items, g.Items)
	return NavGroup{Title: g.Title, Items: items}
}

// CloneNavGroups deep-copies an ordered navigation set.
func CloneNavGroups(groups []NavGroup) []NavGroup {
	out := make([]NavGroup, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}
