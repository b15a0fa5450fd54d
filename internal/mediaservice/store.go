package mediaservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type StoreConfig struct {
	Driver    string
	Endpoint  string
	PublicURL string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "minio":
		return NewMinioStore(ctx, cfg)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// objectURL joins the public base, bucket and key in path style.
func objectURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, key)
}
