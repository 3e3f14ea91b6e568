package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MediaService stores uploaded images in object storage under
// properties/<id>/ and posts/<id>/ prefixes.
type MediaService struct {
	appContext.DefaultService

	minioSvc *MinIOService

	maxUploadBytes int64
}

const MEDIA_SVC = "media_svc"

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *appContext.Context) error {
	svc.maxUploadBytes = 10 << 20 // 10 MiB
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

func (svc *MediaService) UploadPropertyImage(propertyID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	return svc.uploadImage("properties/"+propertyID, file)
}

func (svc *MediaService) UploadPostImage(postID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	return svc.uploadImage("posts/"+postID, file)
}

func (svc *MediaService) uploadImage(prefix string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if file.Size > svc.maxUploadBytes {
		return nil, shared.ErrBadRequest(fmt.Sprintf("File exceeds the %d MB upload limit", svc.maxUploadBytes>>20))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return nil, shared.ErrBadRequest("Unsupported image type")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	id, _ := uuid.NewV7()
	key := fmt.Sprintf("%s/%s%s", prefix, id.String(), ext)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := svc.minioSvc.Upload(ctx, key, src, file.Size, contentType)
	if err != nil {
		log.WithError(err).WithField("key", key).Error("Image upload failed")
		return nil, err
	}

	return &dto.MediaUploadResponse{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        file.Size,
	}, nil
}

func (svc *MediaService) DeleteImage(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return svc.minioSvc.Delete(ctx, key)
}
