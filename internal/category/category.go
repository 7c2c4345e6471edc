package category

import (
	"strings"
	"unicode"
)

// Category and Subcategory are keyed by slug ids derived from their
// names, the same ids the seeded products reference.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`

	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type Subcategory struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// Slugify lowercases a name and replaces every non-letter/digit run with
// a single dash. It keeps non-latin letters so localized category names
// stay readable in ids.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SubcategoryID builds the composite slug used for subcategory ids.
func SubcategoryID(categoryID, subName string) string {
	return categoryID + "__" + Slugify(subName)
}
