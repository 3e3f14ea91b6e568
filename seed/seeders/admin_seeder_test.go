package seeders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/harborview-realty/estate_api/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.SiteSettings{}))
	return db
}

func TestSeedAdminCreatesUserFromEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "ops@harborview.test")
	t.Setenv("ADMIN_PASSWORD", "Trident&Harbor9x")

	db := openTestDB(t)
	require.NoError(t, NewAdminSeeder(db).SeedAdmin())

	var user model.User
	require.NoError(t, db.Where("email = ?", "ops@harborview.test").First(&user).Error)
	assert.Equal(t, "admin", user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Trident&Harbor9x")))
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "ops@harborview.test")
	t.Setenv("ADMIN_PASSWORD", "Trident&Harbor9x")

	db := openTestDB(t)
	seeder := NewAdminSeeder(db)
	require.NoError(t, seeder.SeedAdmin())
	require.NoError(t, seeder.SeedAdmin())

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeedAdminGeneratesPasswordWhenUnset(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "ops@harborview.test")
	t.Setenv("ADMIN_PASSWORD", "")

	db := openTestDB(t)
	require.NoError(t, NewAdminSeeder(db).SeedAdmin())

	var user model.User
	require.NoError(t, db.Where("email = ?", "ops@harborview.test").First(&user).Error)
	assert.NotEmpty(t, user.Password)
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("")))
}

func TestGeneratePassword(t *testing.T) {
	for i := 0; i < 20; i++ {
		password, err := GeneratePassword(16)
		require.NoError(t, err)
		assert.Len(t, password, 16)
		assert.True(t, strings.ContainsAny(password, passwordUppercase))
		assert.True(t, strings.ContainsAny(password, passwordLowercase))
		assert.True(t, strings.ContainsAny(password, passwordDigits))
		assert.True(t, strings.ContainsAny(password, passwordSpecial))
	}
}

func TestSeedSettingsIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seeder := NewSettingsSeeder(db)
	require.NoError(t, seeder.SeedSettings())
	require.NoError(t, seeder.SeedSettings())

	var count int64
	require.NoError(t, db.Model(&model.SiteSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var settings model.SiteSettings
	require.NoError(t, db.Where("id = ?", model.SiteSettingsID).First(&settings).Error)
	assert.Equal(t, "Harborview Realty", settings.SiteName)
}
