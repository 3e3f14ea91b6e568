package dto

import (
	"time"

	"github.com/harborview-realty/estate_api/model"
)

type PostListRequest struct {
	Tag   string `query:"tag"`
	Page  int    `query:"page" validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

func (r PostListRequest) Validate() error {
	return validate.Struct(r)
}

type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Tags        []TagResponse `json:"tags,omitempty"`
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PostCollectionResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type UpsertPostRequest struct {
	Title    string   `json:"title" validate:"required,max=300"`
	Slug     string   `json:"slug" validate:"omitempty,max=300"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	CoverURL string   `json:"cover_url" validate:"omitempty,url"`
	Status   string   `json:"status" validate:"required,oneof=draft published"`
	Tags     []string `json:"tags" validate:"omitempty,max=10"`
}

func (r UpsertPostRequest) Validate() error {
	return validate.Struct(r)
}

func MapPostToResponse(p *model.Post, includeContent bool) PostResponse {
	resp := PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		CoverURL:    p.CoverURL,
		Status:      p.Status,
		PublishedAt: p.PublishedAt,
	}
	if includeContent {
		resp.Content = p.Content
	}
	for _, tag := range p.Tags {
		resp.Tags = append(resp.Tags, TagResponse{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	return resp
}
