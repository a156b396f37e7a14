package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"jahayeon_backend/internal/config"
	"jahayeon_backend/internal/model"
)

// MediaService handles photo uploads to S3-compatible object storage and the
// frame compositing applied to party completion photos.
type MediaService struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
	frame     image.Image
}

// NewMediaService constructs the storage client and loads the party photo
// frame overlay from disk.
func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	if cfg.StorageAccountID == "" || cfg.StorageAccessKeyID == "" || cfg.StorageSecretAccessKey == "" || cfg.StorageBucketName == "" || cfg.StoragePublicURL == "" {
		return nil, fmt.Errorf("missing object storage configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.StorageAccessKeyID, cfg.StorageSecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.StorageAccountID)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		s3Client:  s3Client,
		bucket:    cfg.StorageBucketName,
		publicURL: strings.TrimSuffix(cfg.StoragePublicURL, "/"),
		frame:     loadPartyFrame(cfg.PartyFramePath),
	}, nil
}

// loadPartyFrame reads the overlay image from disk, falling back to a
// transparent frame when the file is absent so the server can still serve
// party completions. Composites with the fallback leave the photo unchanged.
func loadPartyFrame(path string) image.Image {
	frame, err := imaging.Open(path)
	if err != nil {
		log.Printf("[WARN] Party frame %q unavailable, photos will be uploaded unframed: %v", path, err)
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return frame
}

// UploadPartyPhoto composites the frame overlay onto the uploaded photo and
// stores the result as a JPEG, returning its public URL.
func (s *MediaService) UploadPartyPhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	data, _, err := readAndValidateImage(file, header, model.MaxPhotoSizeBytes)
	if err != nil {
		return nil, err
	}

	photo, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}

	composited := s.compositeFrame(photo)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, composited, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", model.PartyPhotoFolder, uuid.NewString(), model.PhotoExt)
	if err := s.putObject(ctx, key, buf.Bytes(), model.ContentTypeJPEG, model.PhotoCacheControl); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", s.publicURL, key)
	return &model.UploadResult{URL: url, Key: key}, nil
}

// compositeFrame stretches the frame to the photo's bounds and alpha-blends
// it on top.
func (s *MediaService) compositeFrame(photo image.Image) image.Image {
	bounds := photo.Bounds()
	frame := imaging.Resize(s.frame, bounds.Dx(), bounds.Dy(), imaging.Lanczos)
	return imaging.Overlay(photo, frame, image.Pt(0, 0), 1.0)
}

// readAndValidateImage loads the upload into memory with size and type checks.
func readAndValidateImage(file multipart.File, header *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if header.Size > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	limitedReader := io.LimitReader(file, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !model.IsAllowedImageType(contentType) {
		return nil, "", model.ErrInvalidImageType
	}

	return data, contentType, nil
}

// putObject uploads bytes to object storage with metadata.
func (s *MediaService) putObject(ctx context.Context, key string, body []byte, contentType, cacheControl string) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to storage: %w", err)
	}
	return nil
}

// DeleteObject removes an object by key.
func (s *MediaService) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from storage: %w", err)
	}
	return nil
}

