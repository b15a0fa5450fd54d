package mediaservice

import (
	"context"
	"io"
	"log/slog"
)

type Kind string

const (
	KindVideo     Kind = "video"
	KindThumbnail Kind = "thumbnail"
	KindImage     Kind = "image"
	KindAvatar    Kind = "avatar"
)

const (
	MaxVideoSize = 200 << 20
	MaxImageSize = 10 << 20
)

// Store writes an object and returns the public URL it is served from.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

type Upload struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type MediaService struct {
	store  Store
	logger *slog.Logger
}
