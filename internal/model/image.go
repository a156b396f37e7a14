package model

import "time"

// Image is a stored photo attached to an event or a party. Exactly one of
// EventID and PartyID is set.
type Image struct {
	ID        int64     `db:"id" json:"id"`
	EventID   *int64    `db:"event_id" json:"event_id,omitempty"`
	PartyID   *int64    `db:"party_id" json:"party_id,omitempty"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Upload constraints shared by the media service and its handlers.
const (
	MaxPhotoSizeBytes = int64(10 * 1024 * 1024)

	ContentTypeJPEG = "image/jpeg"

	PartyPhotoFolder = "parties"
	EventPhotoFolder = "events"
	PhotoExt         = ".jpg"

	PhotoCacheControl = "public, max-age=31536000, immutable"
)

// UploadResult is the public URL and storage key of an uploaded object.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// IsAllowedImageType reports whether a content type may be uploaded.
func IsAllowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
