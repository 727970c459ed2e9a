package model

import (
	"slices"
	"strings"
	"time"
	"unicode"
)

// ClothingItem is a single photographed piece of clothing in a user's wardrobe.
type ClothingItem struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	Style     string    `json:"style"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the item.
func (c *ClothingItem) Clone() *ClothingItem {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Tags = slices.Clone(c.Tags)
	return &cp
}

// Item categories.
const (
	CategoryUncategorized = "uncategorized"
	CategoryTops          = "tops"
	CategoryBottoms       = "bottoms"
	CategoryDresses       = "dresses"
	CategoryOuterwear     = "outerwear"
	CategoryShoes         = "shoes"
	CategoryAccessories   = "accessories"
)

// Categories lists the categories in display order.
var Categories = []string{
	CategoryTops,
	CategoryBottoms,
	CategoryDresses,
	CategoryOuterwear,
	CategoryShoes,
	CategoryAccessories,
	CategoryUncategorized,
}

// Item styles. An empty style means unset.
const (
	StyleCasual      = "casual"
	StyleFormal      = "formal"
	StyleTraditional = "traditional"
	StyleBeachwear   = "beachwear"
)

// Styles lists the styles in display order.
var Styles = []string{
	StyleCasual,
	StyleFormal,
	StyleTraditional,
	StyleBeachwear,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// ValidStyle reports whether s is empty or a known style.
func ValidStyle(s string) bool {
	return s == "" || slices.Contains(Styles, s)
}

// NormalizeTags trims, lowercases, and deduplicates tags, dropping empty ones.
// The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// normalizeTag strips control characters before trimming so that
// whitespace next to them is trimmed too.
func normalizeTag(t string) string {
	t = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, t)
	return strings.ToLower(strings.TrimSpace(t))
}
