package services

import (
	"time"

	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/services/repositories"
	"github.com/harborview-realty/estate_api/shared"

	"github.com/alphabatem/common/context"
)

type PostService struct {
	context.DefaultService

	sqlSvc *PostgresService

	postRepo *repositories.PostRepository
}

const POST_SVC = "post_svc"

func (svc PostService) Id() string {
	return POST_SVC
}

func (svc *PostService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *PostService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.postRepo = repositories.NewPostRepository(svc.sqlSvc.Db())
	return nil
}

// List returns published posts for the public surface.
func (svc *PostService) List(req dto.PostListRequest) (*dto.PostCollectionResponse, error) {
	filter := repositories.PostFilter{
		TagSlug:       req.Tag,
		PublishedOnly: true,
		Page:          req.Page,
		Limit:         req.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	posts, total, err := svc.postRepo.List(filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.PostCollectionResponse{
		Posts: make([]dto.PostResponse, len(posts)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range posts {
		resp.Posts[i] = dto.MapPostToResponse(&posts[i], false)
	}
	return resp, nil
}

func (svc *PostService) GetBySlug(slug string) (*dto.PostResponse, error) {
	post, err := svc.postRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, shared.ErrNotFound("Post not found")
	}

	resp := dto.MapPostToResponse(post, true)
	return &resp, nil
}

func (svc *PostService) Create(authorID string, req dto.UpsertPostRequest) (*dto.PostResponse, error) {
	post := &model.Post{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		CoverURL: req.CoverURL,
		Status:   req.Status,
		AuthorID: authorID,
	}
	if post.Slug == "" {
		post.Slug = Slugify(req.Title)
	}
	if post.Status == shared.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	tags, err := svc.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	post, err = svc.postRepo.Create(post)
	if err != nil {
		return nil, err
	}

	resp := dto.MapPostToResponse(post, true)
	return &resp, nil
}

func (svc *PostService) Update(id string, req dto.UpsertPostRequest) (*dto.PostResponse, error) {
	post, err := svc.postRepo.GetByID(id)
	if err != nil {
		return nil, shared.ErrNotFound("Post not found")
	}

	wasPublished := post.Status == shared.PostStatusPublished

	post.Title = req.Title
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.CoverURL = req.CoverURL
	post.Status = req.Status

	if post.Status == shared.PostStatusPublished && !wasPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	tags, err := svc.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	if err := svc.postRepo.Update(post); err != nil {
		return nil, err
	}

	resp := dto.MapPostToResponse(post, true)
	return &resp, nil
}

func (svc *PostService) Delete(id string) error {
	if _, err := svc.postRepo.GetByID(id); err != nil {
		return shared.ErrNotFound("Post not found")
	}
	return svc.postRepo.Delete(id)
}

func (svc *PostService) ListTags() ([]dto.TagResponse, error) {
	tags, err := svc.postRepo.ListTags()
	if err != nil {
		return nil, err
	}

	resp := make([]dto.TagResponse, len(tags))
	for i, tag := range tags {
		resp[i] = dto.TagResponse{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}
	}
	return resp, nil
}

func (svc *PostService) resolveTags(names []string) ([]model.Tag, error) {
	var tags []model.Tag
	for _, name := range names {
		tag, err := svc.postRepo.GetOrCreateTag(name, Slugify(name))
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
