package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/shared"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Property{},
		&model.User{},
		&model.PasswordResetCode{},
	))
	return db
}

func seedProperty(t *testing.T, repo *PropertyRepository, slug, status, city string, featured bool, dateAdded *time.Time) *model.Property {
	t.Helper()
	created, err := repo.Create(&model.Property{
		Title:     slug,
		Slug:      slug,
		Status:    status,
		City:      city,
		Featured:  featured,
		DateAdded: dateAdded,
	})
	require.NoError(t, err)
	return created
}

func TestPropertyListFiltersAndOrdering(t *testing.T) {
	repo := NewPropertyRepository(openTestDB(t))

	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	seedProperty(t, repo, "plain-old", shared.StatusForSale, "Anytown", false, &older)
	seedProperty(t, repo, "plain-new", shared.StatusForSale, "Anytown", false, &newer)
	seedProperty(t, repo, "featured-old", shared.StatusForSale, "Anytown", true, &older)
	seedProperty(t, repo, "sold-home", shared.StatusSold, "Elsewhere", false, &newer)

	properties, total, err := repo.List(PropertyFilter{Status: shared.StatusForSale})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, properties, 3)

	// Featured first, then newest date_added.
	assert.Equal(t, "featured-old", properties[0].Slug)
	assert.Equal(t, "plain-new", properties[1].Slug)
	assert.Equal(t, "plain-old", properties[2].Slug)

	properties, total, err = repo.List(PropertyFilter{City: "Elsewhere"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, properties, 1)
	assert.Equal(t, "sold-home", properties[0].Slug)

	featured := true
	_, total, err = repo.List(PropertyFilter{Featured: &featured})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestPropertyListPagination(t *testing.T) {
	repo := NewPropertyRepository(openTestDB(t))

	for _, slug := range []string{"one", "two", "three"} {
		seedProperty(t, repo, slug, shared.StatusForSale, "", false, nil)
	}

	properties, total, err := repo.List(PropertyFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, properties, 1)

	// Zero values fall back to the first page and the default page size.
	properties, _, err = repo.List(PropertyFilter{})
	require.NoError(t, err)
	assert.Len(t, properties, 3)
}

func TestGetByWpIDAbsentIsNotAnError(t *testing.T) {
	repo := NewPropertyRepository(openTestDB(t))

	property, err := repo.GetByWpID(12345)
	require.NoError(t, err)
	assert.Nil(t, property)

	wpID := 12345
	_, err = repo.Create(&model.Property{Title: "t", Slug: "t", Status: shared.StatusSold, WpID: &wpID})
	require.NoError(t, err)

	property, err = repo.GetByWpID(12345)
	require.NoError(t, err)
	require.NotNil(t, property)
	assert.Equal(t, "t", property.Slug)
}

func TestUpdateImageURLsTouchesOnlyImages(t *testing.T) {
	repo := NewPropertyRepository(openTestDB(t))

	created := seedProperty(t, repo, "images-home", shared.StatusSold, "Anytown", false, nil)

	require.NoError(t, repo.UpdateImageURLs(created.ID, []byte(`["https://cdn/a.jpg"]`)))

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.jpg"}, got.ImageURLs())
	assert.Equal(t, "images-home", got.Title)
	assert.Equal(t, "Anytown", got.City)
}

func TestSlugExists(t *testing.T) {
	repo := NewPropertyRepository(openTestDB(t))
	seedProperty(t, repo, "taken", shared.StatusSold, "", false, nil)

	exists, err := repo.SlugExists("taken")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists("free")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResetCodeLifecycle(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	user, err := repo.Create(&model.User{Email: "editor@example.com", Password: "hash", Name: "Editor"})
	require.NoError(t, err)

	_, err = repo.CreateResetCode(user.ID, "483920", time.Hour)
	require.NoError(t, err)

	// Wrong code is rejected, the right one consumes exactly once.
	assert.Error(t, repo.ConsumeResetCode(user.ID, "000000"))
	assert.NoError(t, repo.ConsumeResetCode(user.ID, "483920"))
	assert.Error(t, repo.ConsumeResetCode(user.ID, "483920"))
}

func TestExpiredResetCodeRejected(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	user, err := repo.Create(&model.User{Email: "editor@example.com", Password: "hash", Name: "Editor"})
	require.NoError(t, err)

	_, err = repo.CreateResetCode(user.ID, "111111", -time.Minute)
	require.NoError(t, err)

	assert.Error(t, repo.ConsumeResetCode(user.ID, "111111"))

	require.NoError(t, repo.DeleteExpiredResetCodes())
	var count int64
	require.NoError(t, repo.DB().Model(&model.PasswordResetCode{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
