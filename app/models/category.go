package models

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Category groups products. Name and Slug are both unique; the slug is
// derived from the name when left blank.
type Category struct {
	gorm.Model
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:50;uniqueIndex"          json:"slug"`
}

// BeforeSave fills in the slug from the name when absent.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

// Slugify converts a name to a lowercase, hyphen-separated, URL-safe slug.
// "Summer Shoes 2026" → "summer-shoes-2026".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
