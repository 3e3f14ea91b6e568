package seeders

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/harborview-realty/estate_api/model"
)

const defaultAdminEmail = "admin@example.com"

const (
	passwordUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordLowercase = "abcdefghijklmnopqrstuvwxyz"
	passwordDigits    = "0123456789"
	passwordSpecial   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// AdminSeeder bootstraps the first admin account so the admin API is
// reachable on a fresh database.
type AdminSeeder struct {
	db *gorm.DB
}

func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

// SeedAdmin creates the admin user from ADMIN_EMAIL and ADMIN_PASSWORD.
// When ADMIN_PASSWORD is unset a random password is generated and logged
// once. Idempotent: an existing user with the admin email is left alone.
func (s *AdminSeeder) SeedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}

	var existing model.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Info().Str("email", email).Msg("Admin user already exists, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password, err = GeneratePassword(16)
		if err != nil {
			return err
		}
		log.Warn().
			Str("email", email).
			Str("password", password).
			Msg("ADMIN_PASSWORD not set, generated one. Save it now, it will not be shown again")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	id, _ := uuid.NewV7()
	admin := model.User{
		ID:        id.String(),
		Email:     email,
		Name:      "Admin User",
		Password:  string(hash),
		Role:      "admin",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("Created admin user")
	return nil
}

// GeneratePassword returns a random password of the given length holding at
// least one character from each class.
func GeneratePassword(length int) (string, error) {
	classes := []string{passwordUppercase, passwordLowercase, passwordDigits, passwordSpecial}
	all := passwordUppercase + passwordLowercase + passwordDigits + passwordSpecial

	buf := make([]byte, 0, length)
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for len(buf) < length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := int(n.Int64())
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
