package mediaservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sushihentaime/recipehub/internal/common"
)

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrFileTooLarge     = errors.New("file too large")
)

// sniffLen matches the default read limit of mimetype.
const sniffLen = 3072

func NewMediaService(store Store, logger *slog.Logger) *MediaService {
	return &MediaService{store: store, logger: logger}
}

// ParseKind reports whether s names an upload kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(s))
	return k, common.PermittedValue(k, KindVideo, KindThumbnail, KindImage, KindAvatar)
}

// MaxSize is the largest accepted upload of kind k.
func (k Kind) MaxSize() int64 {
	if k == KindVideo {
		return MaxVideoSize
	}
	return MaxImageSize
}

// allows reports whether a sniffed content type fits the kind.
func (k Kind) allows(contentType string) bool {
	if k == KindVideo {
		return strings.HasPrefix(contentType, "video/")
	}
	return strings.HasPrefix(contentType, "image/")
}

// Upload checks the file against the kind and stores it under <kind>/<userID>/<uuid><ext>.
func (s *MediaService) Upload(ctx context.Context, userID int, kind Kind, filename string, size int64, r io.Reader) (*Upload, error) {
	v := common.NewValidator()
	v.Check(userID > 0, "user_id", "must be greater than zero")
	v.Check(common.PermittedValue(kind, KindVideo, KindThumbnail, KindImage, KindAvatar), "kind", "must be one of video, thumbnail, image or avatar")
	v.Check(size > 0, "file", "must not be empty")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if size > kind.MaxSize() {
		return nil, ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	contentType := mtype.String()
	if !kind.allows(contentType) {
		return nil, ErrUnsupportedMedia
	}

	key := fmt.Sprintf("%s/%d/%s%s", kind, userID, uuid.NewString(), extension(filename, mtype))

	url, err := s.store.Put(ctx, key, io.MultiReader(bytes.NewReader(head), r), size, contentType)
	if err != nil {
		return nil, err
	}

	s.logger.Info("media uploaded", "key", key, "size", size, "content_type", contentType)

	return &Upload{URL: url, Key: key, ContentType: contentType, Size: size}, nil
}

// extension keeps the client's extension when it has one, otherwise derives it from the detected type.
func extension(filename string, mtype *mimetype.MIME) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && len(ext) <= 8 {
		return ext
	}
	return mtype.Extension()
}
