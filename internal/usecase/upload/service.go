// Package upload validates files posted by the admin forms and hands them
// to storage under a generated name.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/mcarbmont89/full-congreso-sub000/internal/config"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// DefaultKind is used when the form carries neither type nor folder.
const DefaultKind = "general"

// sniffLen is how many leading bytes are read for content detection.
const sniffLen = 3072

var (
	ErrFileRequired = &entity.ValidationError{Field: "file", Message: "file is required"}
	ErrInvalidType  = &entity.ValidationError{Field: "type", Message: "invalid upload type"}
	ErrFileTooLarge = fmt.Errorf("upload: %w", entity.ErrTooLarge)
)

// Storage persists file contents.
type Storage interface {
	Save(ctx context.Context, folder, name string, r io.Reader) (url string, written int64, err error)
	Delete(ctx context.Context, fileURL string) error
}

// File is one multipart file part.
type File struct {
	// Name is the client-supplied file name, kept only for the response.
	Name    string
	Size    int64
	Content io.Reader
}

type Service struct {
	Policy  *config.UploadPolicy
	Storage Storage
	// NewName returns the base name (without extension) of a stored file.
	NewName func() string
}

// Upload checks f against the rule for kind, detects its type from the
// first bytes and stores it as <uuid><ext>.
func (s *Service) Upload(ctx context.Context, kind string, f File) (*entity.StoredFile, error) {
	if f.Content == nil {
		return nil, ErrFileRequired
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = DefaultKind
	}
	rule, ok := s.Policy.Rule(kind)
	if !ok {
		return nil, ErrInvalidType
	}
	if f.Size > rule.MaxSize {
		return nil, ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrFileRequired
	}

	mt := csvByName(mimetype.Detect(head), f.Name)
	if !allowed(mt, rule.Allowed) {
		return nil, &entity.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file type %s is not allowed for %s uploads", baseType(mt.String()), kind),
		}
	}

	// The client extension is ignored; only the detected one is trusted.
	name := s.newName() + mt.Extension()
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), f.Content), rule.MaxSize+1)
	url, written, err := s.Storage.Save(ctx, rule.Folder, name, body)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if written > rule.MaxSize {
		if err := s.Storage.Delete(ctx, url); err != nil {
			slog.WarnContext(ctx, "remove oversized upload", slog.String("url", url), slog.Any("error", err))
		}
		return nil, ErrFileTooLarge
	}

	return &entity.StoredFile{
		URL:          url,
		Filename:     name,
		OriginalName: filepath.Base(f.Name),
		Size:         written,
		MIME:         baseType(mt.String()),
		Folder:       rule.Folder,
	}, nil
}

// Delete removes a previously uploaded file by its public URL.
func (s *Service) Delete(ctx context.Context, fileURL string) error {
	fileURL = strings.TrimSpace(fileURL)
	if !strings.HasPrefix(fileURL, entity.UploadsPathPrefix) {
		return &entity.ValidationError{Field: "url", Message: "url must be an uploaded file path"}
	}
	if err := s.Storage.Delete(ctx, fileURL); err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

func (s *Service) newName() string {
	if s.NewName != nil {
		return s.NewName()
	}
	return uuid.NewString()
}

// csvByName upgrades plain text to text/csv when the client named the file
// .csv. A single-column CSV has no delimiter for the detector to find.
func csvByName(mt *mimetype.MIME, name string) *mimetype.MIME {
	if !mt.Is("text/plain") || !strings.EqualFold(filepath.Ext(name), ".csv") {
		return mt
	}
	if csv := mimetype.Lookup("text/csv"); csv != nil {
		return csv
	}
	return mt
}

// allowed reports whether the detected type or one of its aliases is listed.
func allowed(mt *mimetype.MIME, list []string) bool {
	for _, want := range list {
		if mt.Is(want) {
			return true
		}
	}
	return false
}

func baseType(t string) string {
	if mediaType, _, err := mime.ParseMediaType(t); err == nil {
		return mediaType
	}
	return t
}
