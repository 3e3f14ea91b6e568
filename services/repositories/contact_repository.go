package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborview-realty/estate_api/model"
	"gorm.io/gorm"
)

type ContactRepository struct {
	BaseRepository
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ContactRepository) Create(submission *model.ContactSubmission) (*model.ContactSubmission, error) {
	id, _ := uuid.NewV7()
	submission.ID = id.String()
	submission.CreatedAt = time.Now()

	if err := ds.db.Create(submission).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

func (ds *ContactRepository) MarkEmailSent(id string) error {
	return ds.db.Model(&model.ContactSubmission{}).
		Where("id = ?", id).
		Update("email_sent", true).Error
}

func (ds *ContactRepository) List(page, limit int) ([]model.ContactSubmission, int64, error) {
	var total int64
	if err := ds.db.Model(&model.ContactSubmission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []model.ContactSubmission
	err := ds.db.
		Order("created_at DESC").
		Scopes(paginate(page, limit, 20)).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}
