package mediaservice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/recipehub/internal/common"
)

type mockStore struct {
	mock.Mock
	body []byte
}

func (m *mockStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.body = body

	args := m.Called(ctx, key, size, contentType)
	return args.String(0), args.Error(1)
}

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	mp4Header = append([]byte{0, 0, 0, 24}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)
	movHeader = append([]byte{0, 0, 0, 20}, []byte("ftypqt  \x20\x05\x03\x00qt  ")...)
	mkvHeader = []byte("\x1a\x45\xdf\xa3\x93\x42\x86\x81\x01\x42\x82\x88matroska\x42\x87\x81\x04")
)

func payload(header []byte, n int) []byte {
	return append(append([]byte{}, header...), bytes.Repeat([]byte{0x01}, n)...)
}

func newTestService(store Store) *MediaService {
	return NewMediaService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestUpload(t *testing.T) {
	keyRX := regexp.MustCompile(`^image/7/[0-9a-f-]{36}\.png$`)

	store := new(mockStore)
	store.On("Put", mock.Anything, mock.MatchedBy(keyRX.MatchString), mock.Anything, "image/png").
		Return("http://localhost:9000/media/x.png", nil)

	data := payload(pngHeader, 2048)
	s := newTestService(store)

	got, err := s.Upload(context.Background(), 7, KindImage, "photo.PNG", int64(len(data)), bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/media/x.png", got.URL)
	assert.Regexp(t, keyRX, got.Key)
	assert.Equal(t, "image/png", got.ContentType)

	// the sniffed head is passed on with the rest of the file
	assert.Equal(t, data, store.body)
}

func TestUploadChecks(t *testing.T) {
	png := payload(pngHeader, 16)
	mp4 := payload(mp4Header, 16)
	mov := payload(movHeader, 16)
	mkv := payload(mkvHeader, 16)

	testCases := []struct {
		name        string
		kind        Kind
		filename    string
		data        []byte
		size        int64
		wantKey     *regexp.Regexp
		wantType    string
		expectedErr error
	}{
		{name: "video", kind: KindVideo, filename: "clip.mp4", data: mp4, wantKey: regexp.MustCompile(`^video/1/.+\.mp4$`), wantType: "video/mp4"},
		{name: "quicktime video", kind: KindVideo, filename: "IMG_0042.MOV", data: mov, wantKey: regexp.MustCompile(`^video/1/.+\.mov$`), wantType: "video/quicktime"},
		{name: "matroska without extension", kind: KindVideo, filename: "clip", data: mkv, wantKey: regexp.MustCompile(`^video/1/[0-9a-f-]{36}\.mkv$`), wantType: "video/x-matroska"},
		{name: "thumbnail without extension", kind: KindThumbnail, filename: "thumb", data: png, wantKey: regexp.MustCompile(`^thumbnail/1/[0-9a-f-]{36}\.png$`), wantType: "image/png"},
		{name: "avatar", kind: KindAvatar, filename: "me.png", data: png, wantKey: regexp.MustCompile(`^avatar/1/`), wantType: "image/png"},
		{name: "image sent as video", kind: KindVideo, filename: "clip.mp4", data: png, expectedErr: ErrUnsupportedMedia},
		{name: "text sent as image", kind: KindImage, filename: "a.png", data: []byte("just some text"), expectedErr: ErrUnsupportedMedia},
		{name: "image too large", kind: KindImage, filename: "a.png", data: png, size: MaxImageSize + 1, expectedErr: ErrFileTooLarge},
		{name: "video too large", kind: KindVideo, filename: "a.mp4", data: mp4, size: MaxVideoSize + 1, expectedErr: ErrFileTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockStore)
			store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("http://cdn/x", nil)

			size := tc.size
			if size == 0 {
				size = int64(len(tc.data))
			}

			got, err := newTestService(store).Upload(context.Background(), 1, tc.kind, tc.filename, size, bytes.NewReader(tc.data))
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			assert.Regexp(t, tc.wantKey, got.Key)
			assert.Equal(t, tc.wantType, got.ContentType)
		})
	}
}

func TestUploadValidation(t *testing.T) {
	s := newTestService(new(mockStore))

	_, err := s.Upload(context.Background(), 0, Kind("document"), "a.pdf", 0, bytes.NewReader(nil))
	assert.Equal(t, common.ValidationError{Errors: map[string]string{
		"user_id": "must be greater than zero",
		"kind":    "must be one of video, thumbnail, image or avatar",
		"file":    "must not be empty",
	}}, err)
}

func TestUploadStoreError(t *testing.T) {
	store := new(mockStore)
	store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket unavailable"))

	data := payload(pngHeader, 8)
	_, err := newTestService(store).Upload(context.Background(), 1, KindImage, "a.png", int64(len(data)), bytes.NewReader(data))
	assert.ErrorContains(t, err, "bucket unavailable")
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("Video")
	assert.True(t, ok)
	assert.Equal(t, KindVideo, k)
	assert.Equal(t, int64(MaxVideoSize), k.MaxSize())

	k, ok = ParseKind("avatar")
	assert.True(t, ok)
	assert.Equal(t, int64(MaxImageSize), k.MaxSize())

	_, ok = ParseKind("pdf")
	assert.False(t, ok)
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/media/image/1/a.png", objectURL("http://localhost:9000/", "media", "image/1/a.png"))
	assert.Equal(t, "https://s3.eu-west-1.amazonaws.com/media/a.png", objectURL("https://s3.eu-west-1.amazonaws.com", "media", "a.png"))

	_, err := NewStore(context.Background(), StoreConfig{Driver: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
