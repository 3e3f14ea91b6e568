package model

import (
	"encoding/json"
	"time"
)

// Property is a listing record. Records imported from the legacy WordPress
// site carry WpID as the external idempotency key; records created in the
// admin surface leave it nil.
type Property struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"not null"`
	Slug     string `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt  string `json:"excerpt" gorm:"type:text"`
	Featured bool   `json:"featured" gorm:"default:false"`

	Status       string `json:"status" gorm:"not null;index;size:30"` // for-sale, sold, ...
	PropertyType string `json:"property_type" gorm:"index;size:30"`   // single-family-home, condo, ...

	Price    *float64 `json:"price"`
	PriceOld *float64 `json:"price_old"`

	Bedrooms  *int     `json:"bedrooms"`
	Bathrooms *float64 `json:"bathrooms"`
	Sqft      *float64 `json:"sqft"`
	Garage    *int     `json:"garage"`
	LotSize   string   `json:"lot_size"`
	YearBuilt *int     `json:"year_built"`

	// Listing reference shown on the site, e.g. MLS number.
	PropertyID string `json:"property_id"`

	Address string `json:"address"`
	City    string `json:"city" gorm:"index;size:100"`
	State   string `json:"state" gorm:"size:10"`
	ZipCode string `json:"zip_code" gorm:"size:10"`
	County  string `json:"county" gorm:"size:100"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	DateAdded *time.Time `json:"date_added"`

	WpID        *int            `json:"wp_id" gorm:"uniqueIndex"`
	WpImageUrls json.RawMessage `json:"wp_image_urls" gorm:"type:text"` // JSON array of URLs

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImageURLs decodes the stored image list. An empty or unset column decodes
// to a nil slice.
func (p *Property) ImageURLs() []string {
	if len(p.WpImageUrls) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(p.WpImageUrls, &urls); err != nil {
		return nil
	}
	return urls
}

func (p *Property) SetImageURLs(urls []string) error {
	raw, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	p.WpImageUrls = raw
	return nil
}
