package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcreations/storefront/app/models"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Summer Shoes 2026", "summer-shoes-2026"},
		{"  Footwear  ", "footwear"},
		{"Tees & Tops", "tees-tops"},
		{"--Weird--Name--", "weird-name"},
		{"ALL CAPS", "all-caps"},
		{"", ""},
		{"!!!", ""},
		{"déjà vu", "déjà-vu"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, models.Slugify(c.in), "slugifying %q", c.in)
	}
}

func TestCategorySlugFilledOnSave(t *testing.T) {
	c := models.Category{Name: "Summer Wear"}
	assert.NoError(t, c.BeforeSave(nil))
	assert.Equal(t, "summer-wear", c.Slug)

	c = models.Category{Name: "Summer Wear", Slug: "custom"}
	assert.NoError(t, c.BeforeSave(nil))
	assert.Equal(t, "custom", c.Slug)
}
