package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/services/repositories"
	"github.com/harborview-realty/estate_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type PropertyService struct {
	appContext.DefaultService

	sqlSvc   *PostgresService
	redisSvc *RedisService

	propertyRepo *repositories.PropertyRepository

	cacheTTL time.Duration
}

const PROPERTY_SVC = "property_svc"

const propertyCachePrefix = "properties:list:"

func (svc PropertyService) Id() string {
	return PROPERTY_SVC
}

func (svc *PropertyService) Configure(ctx *appContext.Context) error {
	svc.cacheTTL = 5 * time.Minute
	return svc.DefaultService.Configure(ctx)
}

func (svc *PropertyService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)

	svc.propertyRepo = repositories.NewPropertyRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *PropertyService) List(req dto.PropertyListRequest) (*dto.PropertyCollectionResponse, error) {
	cacheKey := propertyListCacheKey(req)

	ctx := context.Background()
	var cached dto.PropertyCollectionResponse
	if err := svc.redisSvc.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if err != redis.Nil {
		log.WithError(err).Debug("Property list cache read failed")
	}

	filter := repositories.PropertyFilter{
		Status:       req.Status,
		PropertyType: req.PropertyType,
		City:         req.City,
		Featured:     req.Featured,
		Page:         req.Page,
		Limit:        req.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 24
	}

	properties, total, err := svc.propertyRepo.List(filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.PropertyCollectionResponse{
		Properties: make([]dto.PropertyResponse, len(properties)),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for i := range properties {
		resp.Properties[i] = dto.MapPropertyToResponse(&properties[i])
	}

	if err := svc.redisSvc.Set(ctx, cacheKey, resp, svc.cacheTTL); err != nil {
		log.WithError(err).Debug("Property list cache write failed")
	}

	return resp, nil
}

func (svc *PropertyService) GetBySlug(slug string) (*dto.PropertyResponse, error) {
	property, err := svc.propertyRepo.GetBySlug(slug)
	if err != nil {
		return nil, shared.ErrNotFound("Property not found")
	}

	resp := dto.MapPropertyToResponse(property)
	return &resp, nil
}

func (svc *PropertyService) Create(req dto.UpsertPropertyRequest) (*dto.PropertyResponse, error) {
	property := &model.Property{}
	svc.applyRequest(property, req)

	if property.Slug == "" {
		property.Slug = Slugify(req.Title)
	}
	exists, err := svc.propertyRepo.SlugExists(property.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrConflict("A property with this slug already exists")
	}

	now := time.Now()
	property.DateAdded = &now

	property, err = svc.propertyRepo.Create(property)
	if err != nil {
		return nil, err
	}

	svc.invalidateListCache()

	resp := dto.MapPropertyToResponse(property)
	return &resp, nil
}

func (svc *PropertyService) Update(id string, req dto.UpsertPropertyRequest) (*dto.PropertyResponse, error) {
	property, err := svc.propertyRepo.GetByID(id)
	if err != nil {
		return nil, shared.ErrNotFound("Property not found")
	}

	svc.applyRequest(property, req)
	if property.Slug == "" {
		property.Slug = Slugify(req.Title)
	}

	if err := svc.propertyRepo.Update(property); err != nil {
		return nil, err
	}

	svc.invalidateListCache()

	resp := dto.MapPropertyToResponse(property)
	return &resp, nil
}

func (svc *PropertyService) Delete(id string) error {
	if _, err := svc.propertyRepo.GetByID(id); err != nil {
		return shared.ErrNotFound("Property not found")
	}

	if err := svc.propertyRepo.Delete(id); err != nil {
		return err
	}

	svc.invalidateListCache()
	return nil
}

// InvalidateCache drops every cached listing page, e.g. after an import run.
func (svc *PropertyService) InvalidateCache() {
	svc.invalidateListCache()
}

func (svc *PropertyService) applyRequest(property *model.Property, req dto.UpsertPropertyRequest) {
	property.Title = req.Title
	property.Slug = req.Slug
	property.Excerpt = req.Excerpt
	property.Featured = req.Featured
	property.Status = req.Status
	property.PropertyType = req.PropertyType
	property.Price = req.Price
	property.PriceOld = req.PriceOld
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	property.Sqft = req.Sqft
	property.Garage = req.Garage
	property.LotSize = req.LotSize
	property.YearBuilt = req.YearBuilt
	property.PropertyID = req.PropertyID
	property.Address = req.Address
	property.City = req.City
	property.State = req.State
	property.ZipCode = req.ZipCode
	property.County = req.County
	property.Latitude = req.Latitude
	property.Longitude = req.Longitude

	if req.ImageURLs != nil {
		if err := property.SetImageURLs(req.ImageURLs); err != nil {
			log.WithError(err).Warn("Failed to encode image URLs")
		}
	}
}

func (svc *PropertyService) invalidateListCache() {
	if err := svc.redisSvc.DeletePattern(context.Background(), propertyCachePrefix+"*"); err != nil {
		log.WithError(err).Warn("Failed to invalidate property list cache")
	}
}

func propertyListCacheKey(req dto.PropertyListRequest) string {
	featured := "any"
	if req.Featured != nil {
		featured = fmt.Sprintf("%t", *req.Featured)
	}
	return fmt.Sprintf("%s%s:%s:%s:%s:%d:%d",
		propertyCachePrefix, req.Status, req.PropertyType, req.City, featured, req.Page, req.Limit)
}

var slugCleanRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-friendly identifier.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugCleanRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
