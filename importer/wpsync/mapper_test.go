package wpsync

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytedance/sonic"
	"github.com/harborview-realty/estate_api/shared"
)

func testTaxonomies() Taxonomies {
	return Taxonomies{
		Types:    map[int]string{11: "Condo", 12: "Mansion"},
		Statuses: map[int]string{21: "For Sale", 22: "Haunted"},
		Cities:   map[int]string{31: "Newport Beach"},
	}
}

func TestMapRecordFull(t *testing.T) {
	mapper := NewMapper(testTaxonomies(), "https://example.com/wp-content/uploads/")

	rec := &Record{
		ID:          42,
		Slug:        "sunny-villa",
		Date:        "2024-03-15T10:30:00",
		Title:       RenderedField{Rendered: "Sunny Villa"},
		Excerpt:     RenderedField{Rendered: "<p>A lovely home.</p>\n"},
		TypeTerms:   []int{11},
		StatusTerms: []int{21},
		CityTerms:   []int{31},
		Meta: PropertyMeta{
			Address:   "123 Main St, Anytown, Orange County, CA, 92660, USA",
			Location:  LocationMeta{Latitude: "33.61", Longitude: "-117.92"},
			Featured:  "1",
			Price:     "1250000",
			Bedrooms:  "4",
			Bathrooms: "2.5",
			Size:      "2400",
		},
	}

	property, err := mapper.Map(rec)
	require.NoError(t, err)

	assert.Equal(t, "Sunny Villa", property.Title)
	assert.Equal(t, "sunny-villa", property.Slug)
	assert.Equal(t, "A lovely home.", property.Excerpt)
	assert.Equal(t, shared.TypeCondo, property.PropertyType)
	assert.Equal(t, shared.StatusForSale, property.Status)
	assert.Equal(t, "Newport Beach", property.City)
	assert.True(t, property.Featured)

	require.NotNil(t, property.Price)
	assert.Equal(t, 1250000.0, *property.Price)
	require.NotNil(t, property.Bedrooms)
	assert.Equal(t, 4, *property.Bedrooms)
	require.NotNil(t, property.Bathrooms)
	assert.Equal(t, 2.5, *property.Bathrooms)
	require.NotNil(t, property.Latitude)
	assert.Equal(t, 33.61, *property.Latitude)

	require.NotNil(t, property.WpID)
	assert.Equal(t, 42, *property.WpID)
	require.NotNil(t, property.DateAdded)
	assert.Equal(t, 2024, property.DateAdded.Year())
}

func TestMapRecordAddressParsing(t *testing.T) {
	mapper := NewMapper(testTaxonomies(), "")

	rec := &Record{
		ID: 1,
		Meta: PropertyMeta{
			Address: "123 Main St, Anytown, Orange County, CA, 92660, USA",
		},
	}

	property, err := mapper.Map(rec)
	require.NoError(t, err)

	assert.Equal(t, "92660", property.ZipCode)
	assert.Equal(t, "Orange County", property.County)
	assert.Equal(t, "CA", property.State)
}

func TestMapRecordUnknownTermsFallBackToDefaults(t *testing.T) {
	mapper := NewMapper(testTaxonomies(), "")

	// Term 12/22 resolve to display names without an enum mapping; term 99
	// is absent from the taxonomy entirely.
	for _, rec := range []*Record{
		{ID: 1, TypeTerms: []int{12}, StatusTerms: []int{22}},
		{ID: 2, TypeTerms: []int{99}, StatusTerms: []int{99}},
		{ID: 3},
	} {
		property, err := mapper.Map(rec)
		require.NoError(t, err)
		assert.Equal(t, shared.TypeSingleFamilyHome, property.PropertyType)
		assert.Equal(t, shared.StatusSold, property.Status)
	}
}

func TestMapRecordSlugAndTitleFallbacks(t *testing.T) {
	mapper := NewMapper(testTaxonomies(), "")

	property, err := mapper.Map(&Record{ID: 77})
	require.NoError(t, err)

	assert.Equal(t, "property-77", property.Slug)
	assert.Equal(t, "Untitled Property", property.Title)
}

func TestImportImageURLPreference(t *testing.T) {
	uploadBase := "https://example.com/wp-content/uploads/"
	images := []ImageMeta{
		{Sizes: map[string]ImageSize{
			"property_size_rh_map_thumb": {SourceURL: "https://cdn/thumb.jpg"},
			"full":                       {SourceURL: "https://cdn/full.jpg"},
		}},
		{Sizes: map[string]ImageSize{
			"full": {SourceURL: "https://cdn/full-only.jpg"},
		}},
		{File: "2024/03/house.jpg"},
		{},
	}

	urls := importImageURLs(images, uploadBase)

	assert.Equal(t, []string{
		"https://cdn/thumb.jpg",
		"https://cdn/full-only.jpg",
		uploadBase + "2024/03/house.jpg",
	}, urls)
}

func TestImportImageURLsCapped(t *testing.T) {
	var images []ImageMeta
	for i := 0; i < 30; i++ {
		images = append(images, ImageMeta{File: fmt.Sprintf("img-%d.jpg", i)})
	}

	urls := importImageURLs(images, "base/")
	assert.Len(t, urls, 20)
}

func TestPatchImageURLPreference(t *testing.T) {
	images := []ImageMeta{
		{FullURL: "https://cdn/a-full.jpg", URL: "https://cdn/a.jpg", File: "a.jpg"},
		{URL: "https://cdn/b.jpg", File: "b.jpg"},
		{File: "c.jpg"},
		{},
	}

	urls := patchImageURLs(images, "base/")

	assert.Equal(t, []string{
		"https://cdn/a-full.jpg",
		"https://cdn/b.jpg",
		"base/c.jpg",
	}, urls)
}

func TestFlexStringDecoding(t *testing.T) {
	var meta PropertyMeta
	raw := `{
		"REAL_HOMES_property_price": "450000",
		"REAL_HOMES_property_bedrooms": 3,
		"REAL_HOMES_property_old_price": "",
		"REAL_HOMES_property_size": null,
		"REAL_HOMES_featured": 1
	}`
	require.NoError(t, sonic.Unmarshal([]byte(raw), &meta))

	require.NotNil(t, meta.Price.Float())
	assert.Equal(t, 450000.0, *meta.Price.Float())
	require.NotNil(t, meta.Bedrooms.Int())
	assert.Equal(t, 3, *meta.Bedrooms.Int())
	assert.Nil(t, meta.OldPrice.Float())
	assert.Nil(t, meta.Size.Float())
	assert.Equal(t, "1", meta.Featured.String())
}

func TestDeriveUploadBase(t *testing.T) {
	assert.Equal(t,
		"https://momentumrg.com/wp-content/uploads/",
		deriveUploadBase("https://momentumrg.com/wp-json/wp/v2"))
	assert.Equal(t,
		"http://127.0.0.1:8080/wp-content/uploads/",
		deriveUploadBase("http://127.0.0.1:8080"))
}
