package dto

import (
	"time"

	"github.com/harborview-realty/estate_api/model"
)

type PropertyListRequest struct {
	Status       string `query:"status" validate:"omitempty,oneof=for-sale sold in-escrow for-lease leased pending on-hold cancelled coming-soon"`
	PropertyType string `query:"type" validate:"omitempty,oneof=single-family-home condo townhouse duplex fourplex multi-unit apartment land co-op"`
	City         string `query:"city"`
	Featured     *bool  `query:"featured"`
	Page         int    `query:"page" validate:"omitempty,min=1"`
	Limit        int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (r PropertyListRequest) Validate() error {
	return validate.Struct(r)
}

type PropertyResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt,omitempty"`
	Featured     bool       `json:"featured"`
	Status       string     `json:"status"`
	PropertyType string     `json:"property_type,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	PriceOld     *float64   `json:"price_old,omitempty"`
	Bedrooms     *int       `json:"bedrooms,omitempty"`
	Bathrooms    *float64   `json:"bathrooms,omitempty"`
	Sqft         *float64   `json:"sqft,omitempty"`
	Garage       *int       `json:"garage,omitempty"`
	LotSize      string     `json:"lot_size,omitempty"`
	YearBuilt    *int       `json:"year_built,omitempty"`
	PropertyID   string     `json:"property_id,omitempty"`
	Address      string     `json:"address,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	ZipCode      string     `json:"zip_code,omitempty"`
	County       string     `json:"county,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	DateAdded    *time.Time `json:"date_added,omitempty"`
	ImageURLs    []string   `json:"image_urls,omitempty"`
}

type PropertyCollectionResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type UpsertPropertyRequest struct {
	Title        string   `json:"title" validate:"required,max=300"`
	Slug         string   `json:"slug" validate:"omitempty,max=300"`
	Excerpt      string   `json:"excerpt"`
	Featured     bool     `json:"featured"`
	Status       string   `json:"status" validate:"required,oneof=for-sale sold in-escrow for-lease leased pending on-hold cancelled coming-soon"`
	PropertyType string   `json:"property_type" validate:"omitempty,oneof=single-family-home condo townhouse duplex fourplex multi-unit apartment land co-op"`
	Price        *float64 `json:"price"`
	PriceOld     *float64 `json:"price_old"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	Sqft         *float64 `json:"sqft"`
	Garage       *int     `json:"garage"`
	LotSize      string   `json:"lot_size"`
	YearBuilt    *int     `json:"year_built"`
	PropertyID   string   `json:"property_id"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zip_code"`
	County       string   `json:"county"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ImageURLs    []string `json:"image_urls" validate:"omitempty,max=20,dive,url"`
}

func (r UpsertPropertyRequest) Validate() error {
	return validate.Struct(r)
}

func MapPropertyToResponse(p *model.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Excerpt:      p.Excerpt,
		Featured:     p.Featured,
		Status:       p.Status,
		PropertyType: p.PropertyType,
		Price:        p.Price,
		PriceOld:     p.PriceOld,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Sqft:         p.Sqft,
		Garage:       p.Garage,
		LotSize:      p.LotSize,
		YearBuilt:    p.YearBuilt,
		PropertyID:   p.PropertyID,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		County:       p.County,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		DateAdded:    p.DateAdded,
		ImageURLs:    p.ImageURLs(),
	}
}
