package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/shared"
	"gorm.io/gorm"
)

type PostRepository struct {
	BaseRepository
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

type PostFilter struct {
	TagSlug       string
	PublishedOnly bool
	Page          int
	Limit         int
}

func (ds *PostRepository) List(filter PostFilter) ([]model.Post, int64, error) {
	query := ds.db.Model(&model.Post{}).Preload("Tags")

	if filter.PublishedOnly {
		query = query.Where("status = ?", shared.PostStatusPublished)
	}
	if filter.TagSlug != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := query.
		Order("published_at DESC, created_at DESC").
		Scopes(paginate(filter.Page, filter.Limit, 10)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (ds *PostRepository) GetBySlug(slug string, publishedOnly bool) (*model.Post, error) {
	query := ds.db.Preload("Tags").Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("status = ?", shared.PostStatusPublished)
	}

	var post model.Post
	if err := query.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (ds *PostRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := ds.db.Preload("Tags").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (ds *PostRepository) Create(post *model.Post) (*model.Post, error) {
	if post.ID == "" {
		id, _ := uuid.NewV7()
		post.ID = id.String()
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()

	if err := ds.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (ds *PostRepository) Update(post *model.Post) error {
	post.UpdatedAt = time.Now()
	if err := ds.db.Session(&gorm.Session{FullSaveAssociations: false}).Save(post).Error; err != nil {
		return err
	}
	return ds.db.Model(post).Association("Tags").Replace(post.Tags)
}

func (ds *PostRepository) Delete(id string) error {
	return ds.db.Where("id = ?", id).Delete(&model.Post{}).Error
}

// GetOrCreateTag resolves a tag by name, creating it on first use.
func (ds *PostRepository) GetOrCreateTag(name, slug string) (*model.Tag, error) {
	var tag model.Tag
	err := ds.db.Where("slug = ?", slug).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	id, _ := uuid.NewV7()
	tag = model.Tag{
		ID:        id.String(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := ds.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (ds *PostRepository) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	if err := ds.db.Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
