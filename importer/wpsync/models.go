package wpsync

import (
	"bytes"
	"strconv"

	"github.com/bytedance/sonic"
)

// FlexString tolerates the WordPress REST API's loose typing: meta fields
// arrive as strings, numbers or null depending on the plugin version.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// Float parses the value, returning nil for empty, zero or unparseable
// input. Zero maps to nil because the source system stores unset numerics
// as 0 or "".
func (f FlexString) Float() *float64 {
	s := string(f)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func (f FlexString) Int() *int {
	v := f.Float()
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type RenderedField struct {
	Rendered string `json:"rendered"`
}

type ImageSize struct {
	SourceURL string `json:"source_url"`
}

type ImageMeta struct {
	File    string               `json:"file"`
	FullURL string               `json:"full_url"`
	URL     string               `json:"url"`
	Sizes   map[string]ImageSize `json:"sizes"`
}

type LocationMeta struct {
	Latitude  FlexString `json:"latitude"`
	Longitude FlexString `json:"longitude"`
}

type PropertyMeta struct {
	Address    FlexString   `json:"REAL_HOMES_property_address"`
	Location   LocationMeta `json:"REAL_HOMES_property_location"`
	Images     []ImageMeta  `json:"REAL_HOMES_property_images"`
	Featured   FlexString   `json:"REAL_HOMES_featured"`
	Price      FlexString   `json:"REAL_HOMES_property_price"`
	OldPrice   FlexString   `json:"REAL_HOMES_property_old_price"`
	Bedrooms   FlexString   `json:"REAL_HOMES_property_bedrooms"`
	Bathrooms  FlexString   `json:"REAL_HOMES_property_bathrooms"`
	Size       FlexString   `json:"REAL_HOMES_property_size"`
	Garage     FlexString   `json:"REAL_HOMES_property_garage"`
	LotSize    FlexString   `json:"REAL_HOMES_property_lot_size"`
	YearBuilt  FlexString   `json:"REAL_HOMES_property_year_built"`
	PropertyID FlexString   `json:"REAL_HOMES_property_id"`
}

// Record is one property as returned by the remote catalog listing.
type Record struct {
	ID          int           `json:"id"`
	Slug        string        `json:"slug"`
	Date        string        `json:"date"`
	Title       RenderedField `json:"title"`
	Excerpt     RenderedField `json:"excerpt"`
	TypeTerms   []int         `json:"property-types"`
	StatusTerms []int         `json:"property-statuses"`
	CityTerms   []int         `json:"property-cities"`
	Meta        PropertyMeta  `json:"property_meta"`
}

// Taxonomies holds the remote term id to display name maps, fetched in
// full before any record is processed.
type Taxonomies struct {
	Types    map[int]string
	Statuses map[int]string
	Cities   map[int]string
}
