// Package storage writes uploaded files to the local disk directory that the
// API serves under /uploads/.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// ErrInvalidPath is returned for URLs outside the uploads tree.
var ErrInvalidPath = fmt.Errorf("upload path %w", entity.ErrInvalidInput)

// Local stores files under Root and builds URLs under BaseURL.
type Local struct {
	Root    string
	BaseURL string
}

// NewLocal creates root if needed. baseURL defaults to /uploads.
func NewLocal(root, baseURL string) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("storage: upload dir is empty")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	if baseURL == "" {
		baseURL = strings.TrimSuffix(entity.UploadsPathPrefix, "/")
	}
	return &Local{Root: root, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save writes r to <Root>/<folder>/<name> and returns the public URL and the
// number of bytes written. A partially written file is removed on error.
func (l *Local) Save(ctx context.Context, folder, name string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if !safeSegment(folder) || !safeSegment(name) {
		return "", 0, ErrInvalidPath
	}
	dir := filepath.Join(l.Root, folder)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", 0, fmt.Errorf("storage: create folder: %w", err)
	}

	dst := filepath.Join(dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) // #nosec G304 -- name is generated
	if err != nil {
		return "", 0, fmt.Errorf("storage: create file: %w", err)
	}
	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", 0, fmt.Errorf("storage: write file: %w", err)
	}
	return l.BaseURL + "/" + folder + "/" + name, n, nil
}

// Delete removes the file addressed by a URL returned from Save.
func (l *Local) Delete(ctx context.Context, fileURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := l.relative(fileURL)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(l.Root, filepath.FromSlash(rel))); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("upload %w", entity.ErrNotFound)
		}
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

// relative maps /uploads/<folder>/<name> to <folder>/<name>.
func (l *Local) relative(fileURL string) (string, error) {
	prefix := l.BaseURL + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", ErrInvalidPath
	}
	rel := strings.TrimPrefix(fileURL, prefix)
	if i := strings.IndexAny(rel, "?#"); i >= 0 {
		rel = rel[:i]
	}
	folder, name, ok := strings.Cut(rel, "/")
	if !ok || !safeSegment(folder) || !safeSegment(name) || path.Clean(rel) != rel {
		return "", ErrInvalidPath
	}
	return rel, nil
}

func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}
