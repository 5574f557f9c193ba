package gallery

import (
	"errors"
	"time"
)

const (
	DefaultLimit = 60
	DefaultTTL   = 30 * 24 * time.Hour

	// DeviceHeader carries the opaque id a gallery belongs to.
	DeviceHeader = "X-Device-ID"
)

var (
	ErrImageRequired = errors.New("imageDataUrl is required")
	ErrNotFound      = errors.New("gallery entry not found")
)

// Entry is one saved poster.
type Entry struct {
	Username     string `json:"username"`
	ImageDataURL string `json:"imageDataUrl"`
	// CreatedAt is epoch milliseconds and identifies the entry within its gallery.
	CreatedAt int64 `json:"createdAt"`
}

type saveDTO struct {
	Username     string `json:"username"`
	ImageDataURL string `json:"imageDataUrl"`
}
