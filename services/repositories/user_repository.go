package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-realty/estate_api/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) Create(user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := ds.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ds *UserRepository) Update(user *model.User) error {
	user.UpdatedAt = time.Now()
	return ds.db.Save(user).Error
}

func (ds *UserRepository) CreateResetCode(userID, code string, ttl time.Duration) (*model.PasswordResetCode, error) {
	id, _ := uuid.NewV7()
	resetCode := &model.PasswordResetCode{
		ID:        id.String(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	if err := ds.db.Create(resetCode).Error; err != nil {
		return nil, err
	}
	return resetCode, nil
}

// ConsumeResetCode marks a live code as used. Returns an error when the code
// is unknown, expired, or already consumed.
func (ds *UserRepository) ConsumeResetCode(userID, code string) error {
	var resetCode model.PasswordResetCode
	err := ds.db.
		Where("user_id = ? AND code = ? AND used_at IS NULL AND expires_at > ?", userID, code, time.Now()).
		First(&resetCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("invalid or expired reset code")
		}
		return err
	}

	now := time.Now()
	resetCode.UsedAt = &now
	return ds.db.Save(&resetCode).Error
}

func (ds *UserRepository) DeleteExpiredResetCodes() error {
	return ds.db.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetCode{}).Error
}
