package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harborview-realty/estate_api/dto"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sunny Villa", "sunny-villa"},
		{"  123 Main St, Anytown  ", "123-main-st-anytown"},
		{"Côte d'Azur Estate", "c-te-d-azur-estate"},
		{"UPPER CASE", "upper-case"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestPropertyListCacheKey(t *testing.T) {
	featured := true
	a := propertyListCacheKey(dto.PropertyListRequest{Status: "for-sale", Page: 1, Limit: 24})
	b := propertyListCacheKey(dto.PropertyListRequest{Status: "for-sale", Page: 2, Limit: 24})
	c := propertyListCacheKey(dto.PropertyListRequest{Status: "for-sale", Page: 1, Limit: 24, Featured: &featured})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)

	// Same request always produces the same key.
	assert.Equal(t, a, propertyListCacheKey(dto.PropertyListRequest{Status: "for-sale", Page: 1, Limit: 24}))
}
