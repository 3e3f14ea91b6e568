package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-realty/estate_api/model"
	"gorm.io/gorm"
)

type PropertyRepository struct {
	BaseRepository
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

type PropertyFilter struct {
	Status       string
	PropertyType string
	City         string
	Featured     *bool
	Page         int
	Limit        int
}

func (ds *PropertyRepository) List(filter PropertyFilter) ([]model.Property, int64, error) {
	query := ds.db.Model(&model.Property{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []model.Property
	err := query.
		Order("featured DESC, date_added DESC NULLS LAST, created_at DESC").
		Scopes(paginate(filter.Page, filter.Limit, 24)).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (ds *PropertyRepository) GetBySlug(slug string) (*model.Property, error) {
	var property model.Property
	if err := ds.db.Where("slug = ?", slug).First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (ds *PropertyRepository) GetByID(id string) (*model.Property, error) {
	var property model.Property
	if err := ds.db.Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// GetByWpID returns (nil, nil) when no record carries the external id; the
// importer treats that as "safe to insert".
func (ds *PropertyRepository) GetByWpID(wpID int) (*model.Property, error) {
	var property model.Property
	err := ds.db.Where("wp_id = ?", wpID).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (ds *PropertyRepository) Create(property *model.Property) (*model.Property, error) {
	if property.ID == "" {
		id, _ := uuid.NewV7()
		property.ID = id.String()
	}
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()

	if err := ds.db.Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

func (ds *PropertyRepository) Update(property *model.Property) error {
	property.UpdatedAt = time.Now()
	return ds.db.Save(property).Error
}

func (ds *PropertyRepository) Delete(id string) error {
	return ds.db.Where("id = ?", id).Delete(&model.Property{}).Error
}

// ListAll pages through every property, for batch jobs.
func (ds *PropertyRepository) ListAll(limit int) ([]model.Property, error) {
	if limit < 1 {
		limit = 300
	}
	var properties []model.Property
	if err := ds.db.Order("created_at").Limit(limit).Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// UpdateImageURLs replaces only the stored image list.
func (ds *PropertyRepository) UpdateImageURLs(id string, raw []byte) error {
	return ds.db.Model(&model.Property{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"wp_image_urls": raw,
			"updated_at":    time.Now(),
		}).Error
}

func (ds *PropertyRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.Property{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
