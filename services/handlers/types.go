package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/model"
)

type AuthServiceInterface interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPassword(email string) error
	ResetPassword(req dto.ResetPasswordRequest) error
	ChangePassword(userID string, req dto.ChangePasswordRequest) error
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

type PropertyServiceInterface interface {
	List(req dto.PropertyListRequest) (*dto.PropertyCollectionResponse, error)
	GetBySlug(slug string) (*dto.PropertyResponse, error)
	Create(req dto.UpsertPropertyRequest) (*dto.PropertyResponse, error)
	Update(id string, req dto.UpsertPropertyRequest) (*dto.PropertyResponse, error)
	Delete(id string) error
}

type PostServiceInterface interface {
	List(req dto.PostListRequest) (*dto.PostCollectionResponse, error)
	GetBySlug(slug string) (*dto.PostResponse, error)
	Create(authorID string, req dto.UpsertPostRequest) (*dto.PostResponse, error)
	Update(id string, req dto.UpsertPostRequest) (*dto.PostResponse, error)
	Delete(id string) error
	ListTags() ([]dto.TagResponse, error)
}

type ContactServiceInterface interface {
	Submit(req dto.ContactRequest, clientIP string) (*dto.ContactResponse, error)
	List(page, limit int) ([]model.ContactSubmission, int64, error)
}

type SettingsServiceInterface interface {
	Get() (*model.SiteSettings, error)
	Update(req dto.UpdateSettingsRequest) (*model.SiteSettings, error)
}

type MediaServiceInterface interface {
	UploadPropertyImage(propertyID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadPostImage(postID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	DeleteImage(key string) error
}
