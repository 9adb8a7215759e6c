package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/config"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/usecase/upload"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type memStorage struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func (m *memStorage) Save(_ context.Context, folder, name string, r io.Reader) (string, int64, error) {
	if m.saveErr != nil {
		return "", 0, m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	url := "/uploads/" + folder + "/" + name
	m.saved[url] = data
	return url, int64(len(data)), nil
}

func (m *memStorage) Delete(_ context.Context, url string) error {
	if _, ok := m.saved[url]; !ok {
		return entity.ErrNotFound
	}
	delete(m.saved, url)
	m.deleted = append(m.deleted, url)
	return nil
}

func newService(t *testing.T, policyYAML string) (*upload.Service, *memStorage) {
	t.Helper()
	var (
		policy *config.UploadPolicy
		err    error
	)
	if policyYAML == "" {
		policy, err = config.LoadUploadPolicy("")
	} else {
		policy, err = config.ParseUploadPolicy([]byte(policyYAML))
	}
	require.NoError(t, err)
	store := &memStorage{saved: map[string][]byte{}}
	return &upload.Service{Policy: policy, Storage: store, NewName: func() string { return "fixed" }}, store
}

func TestService_Upload_Image(t *testing.T) {
	svc, store := newService(t, "")

	got, err := svc.Upload(context.Background(), "image", upload.File{
		Name:    "../../foto.exe",
		Size:    int64(len(pngHeader)),
		Content: bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, &entity.StoredFile{
		URL:          "/uploads/images/fixed.png",
		Filename:     "fixed.png",
		OriginalName: "foto.exe",
		Size:         int64(len(pngHeader)),
		MIME:         "image/png",
		Folder:       "images",
	}, got)
	assert.Equal(t, pngHeader, store.saved[got.URL])
}

func TestService_Upload_DefaultKindAndFolderAlias(t *testing.T) {
	svc, _ := newService(t, "")

	got, err := svc.Upload(context.Background(), "", upload.File{Name: "nota.txt", Size: 10, Content: strings.NewReader("hola mundo")})
	require.NoError(t, err)
	assert.Equal(t, "general", got.Folder)
	assert.Equal(t, "text/plain", got.MIME)
	assert.Equal(t, "/uploads/general/fixed.txt", got.URL)

	got, err = svc.Upload(context.Background(), "Images", upload.File{Name: "a.png", Size: 1, Content: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
	assert.Equal(t, "images", got.Folder)
}

func TestService_Upload_SingleColumnCSVDataset(t *testing.T) {
	svc, store := newService(t, "")
	body := "nombre\nAna\nLuis\n"

	got, err := svc.Upload(context.Background(), "dataset", upload.File{Name: "diputados.CSV", Size: int64(len(body)), Content: strings.NewReader(body)})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", got.MIME)
	assert.Equal(t, "/uploads/datasets/fixed.csv", got.URL)
	assert.Equal(t, []byte(body), store.saved[got.URL])

	_, err = svc.Upload(context.Background(), "dataset", upload.File{Name: "notas.txt", Size: int64(len(body)), Content: strings.NewReader(body)})
	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "file type text/plain is not allowed for dataset uploads")
}

func TestService_Upload_LargeBodyIsCopiedWhole(t *testing.T) {
	svc, store := newService(t, "")
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 10_000)...)

	got, err := svc.Upload(context.Background(), "image", upload.File{Name: "big.png", Size: int64(len(body)), Content: bytes.NewReader(body)})
	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), got.Size)
	assert.Equal(t, body, store.saved[got.URL])
}

func TestService_Upload_Errors(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		file    upload.File
		wantIs  error
		wantMsg string
	}{
		{name: "no file", kind: "image", file: upload.File{}, wantIs: upload.ErrFileRequired},
		{name: "empty file", kind: "image", file: upload.File{Name: "a.png", Content: strings.NewReader("")}, wantIs: upload.ErrFileRequired},
		{name: "unknown type", kind: "binaries", file: upload.File{Content: strings.NewReader("x")}, wantIs: upload.ErrInvalidType},
		{name: "declared size too big", kind: "image", file: upload.File{Size: 6 << 20, Content: bytes.NewReader(pngHeader)}, wantIs: entity.ErrTooLarge},
		{name: "text posing as image", kind: "image", file: upload.File{Name: "x.png", Size: 5, Content: strings.NewReader("hello")}, wantIs: entity.ErrValidationFailed, wantMsg: "file type text/plain is not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t, "")
			_, err := svc.Upload(context.Background(), tt.kind, tt.file)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
			if tt.wantMsg != "" {
				var ve *entity.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Contains(t, ve.Message, tt.wantMsg)
			}
			assert.Empty(t, store.saved)
		})
	}
}

func TestService_Upload_ActualSizeExceedsLimit(t *testing.T) {
	svc, store := newService(t, "types:\n  image:\n    folder: images\n    max_size: 64\n    allowed: [image/png]\n")
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 100)...)

	// The declared size lies; the stored copy is checked too.
	_, err := svc.Upload(context.Background(), "image", upload.File{Name: "a.png", Size: 10, Content: bytes.NewReader(body)})
	assert.ErrorIs(t, err, entity.ErrTooLarge)
	assert.Empty(t, store.saved)
	assert.Equal(t, []string{"/uploads/images/fixed.png"}, store.deleted)
}

func TestService_Upload_StorageError(t *testing.T) {
	svc, store := newService(t, "")
	store.saveErr = errors.New("disk full")

	_, err := svc.Upload(context.Background(), "image", upload.File{Name: "a.png", Size: 1, Content: bytes.NewReader(pngHeader)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestService_Delete(t *testing.T) {
	svc, store := newService(t, "")
	store.saved["/uploads/images/a.png"] = pngHeader

	require.NoError(t, svc.Delete(context.Background(), "/uploads/images/a.png"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "/uploads/images/a.png"), entity.ErrNotFound)

	err := svc.Delete(context.Background(), "https://evil.example/x")
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
}
