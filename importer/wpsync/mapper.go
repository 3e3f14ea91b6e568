package wpsync

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/shared"
)

// Display-name to internal enum tables. Unknown names fall back to a
// default rather than failing the record.
var typeMap = map[string]string{
	"Single Family Home": shared.TypeSingleFamilyHome,
	"Condo":              shared.TypeCondo,
	"Townhouse":          shared.TypeTownhouse,
	"Duplex":             shared.TypeDuplex,
	"Fourplex":           shared.TypeFourplex,
	"Multi Unit":         shared.TypeMultiUnit,
	"Apartment":          shared.TypeApartment,
	"Land":               shared.TypeLand,
	"Co-Op":              shared.TypeCoOp,
}

var statusMap = map[string]string{
	"For Sale":       shared.StatusForSale,
	"Sold":           shared.StatusSold,
	"In Escrow":      shared.StatusInEscrow,
	"For Lease":      shared.StatusForLease,
	"Leased":         shared.StatusLeased,
	"Pending":        shared.StatusPending,
	"On Hold":        shared.StatusOnHold,
	"Cancelled":      shared.StatusCancelled,
	"Coming Soon":    shared.StatusComingSoon,
	"Under Contract": shared.StatusInEscrow,
	"On Sale":        shared.StatusForSale,
	"For Rent":       shared.StatusForLease,
}

const (
	defaultPropertyType = shared.TypeSingleFamilyHome
	defaultStatus       = shared.StatusSold

	// The listing size name the source site generates for map cards.
	preferredImageSize = "property_size_rh_map_thumb"

	maxImages = 20
)

var (
	zipRegex     = regexp.MustCompile(`\b\d{5}\b`)
	countyRegex  = regexp.MustCompile(`(\w+)\s+County`)
	htmlTagRegex = regexp.MustCompile(`<[^>]+>`)
)

// Mapper turns remote catalog records into local property rows.
type Mapper struct {
	tax        Taxonomies
	uploadBase string
}

func NewMapper(tax Taxonomies, uploadBase string) *Mapper {
	return &Mapper{tax: tax, uploadBase: uploadBase}
}

func (m *Mapper) Map(rec *Record) (*model.Property, error) {
	property := &model.Property{
		Title:        cleanTitle(rec.Title.Rendered),
		Slug:         slugFor(rec),
		Excerpt:      stripHTML(rec.Excerpt.Rendered),
		Status:       m.resolveStatus(rec),
		PropertyType: m.resolveType(rec),
		Featured:     rec.Meta.Featured.String() == "1",
		Price:        rec.Meta.Price.Float(),
		PriceOld:     rec.Meta.OldPrice.Float(),
		Bedrooms:     rec.Meta.Bedrooms.Int(),
		Bathrooms:    rec.Meta.Bathrooms.Float(),
		Sqft:         rec.Meta.Size.Float(),
		Garage:       rec.Meta.Garage.Int(),
		LotSize:      rec.Meta.LotSize.String(),
		YearBuilt:    rec.Meta.YearBuilt.Int(),
		PropertyID:   rec.Meta.PropertyID.String(),
		Address:      rec.Meta.Address.String(),
		City:         m.resolveCity(rec),
		State:        "CA",
		ZipCode:      extractZip(rec.Meta.Address.String()),
		County:       extractCounty(rec.Meta.Address.String()),
		Latitude:     rec.Meta.Location.Latitude.Float(),
		Longitude:    rec.Meta.Location.Longitude.Float(),
		DateAdded:    parseDate(rec.Date),
	}

	wpID := rec.ID
	property.WpID = &wpID

	if err := property.SetImageURLs(importImageURLs(rec.Meta.Images, m.uploadBase)); err != nil {
		return nil, err
	}
	return property, nil
}

func (m *Mapper) resolveType(rec *Record) string {
	if len(rec.TypeTerms) > 0 {
		if name, ok := m.tax.Types[rec.TypeTerms[0]]; ok {
			if mapped, ok := typeMap[name]; ok {
				return mapped
			}
		}
	}
	return defaultPropertyType
}

func (m *Mapper) resolveStatus(rec *Record) string {
	if len(rec.StatusTerms) > 0 {
		if name, ok := m.tax.Statuses[rec.StatusTerms[0]]; ok {
			if mapped, ok := statusMap[name]; ok {
				return mapped
			}
		}
	}
	return defaultStatus
}

func (m *Mapper) resolveCity(rec *Record) string {
	if len(rec.CityTerms) > 0 {
		return m.tax.Cities[rec.CityTerms[0]]
	}
	return ""
}

func slugFor(rec *Record) string {
	if rec.Slug != "" {
		return rec.Slug
	}
	return fmt.Sprintf("property-%d", rec.ID)
}

func cleanTitle(title string) string {
	title = strings.ReplaceAll(title, " ", " ")
	if title == "" {
		return "Untitled Property"
	}
	return title
}

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(s, ""))
}

func extractZip(address string) string {
	return zipRegex.FindString(address)
}

func extractCounty(address string) string {
	return countyRegex.FindString(address)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// importImageURLs builds the image list for a freshly imported record:
// prefer the named listing size, then the full size, then reconstruct
// from the relative file path. Entries resolving to no URL are dropped.
func importImageURLs(images []ImageMeta, uploadBase string) []string {
	if len(images) > maxImages {
		images = images[:maxImages]
	}
	var urls []string
	for _, img := range images {
		url := ""
		if size, ok := img.Sizes[preferredImageSize]; ok && size.SourceURL != "" {
			url = size.SourceURL
		} else if size, ok := img.Sizes["full"]; ok && size.SourceURL != "" {
			url = size.SourceURL
		} else if img.File != "" {
			url = uploadBase + img.File
		}
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// patchImageURLs builds the image list for back-fill: single-record
// responses expose full_url/url directly, so prefer those before path
// reconstruction.
func patchImageURLs(images []ImageMeta, uploadBase string) []string {
	if len(images) > maxImages {
		images = images[:maxImages]
	}
	var urls []string
	for _, img := range images {
		url := ""
		switch {
		case img.FullURL != "":
			url = img.FullURL
		case img.URL != "":
			url = img.URL
		case img.File != "":
			url = uploadBase + img.File
		}
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
