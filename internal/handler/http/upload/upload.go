// Package upload provides the multipart upload endpoint and the static file
// server for stored uploads.
package upload

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/logging"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/metrics"
	uploadUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/upload"
)

// memoryLimit is how much of a multipart form is buffered in memory before
// parts spill to temporary files.
const memoryLimit = 8 << 20

// Register mounts the upload endpoints and serves dir under /uploads/.
func Register(mux *http.ServeMux, svc *uploadUC.Service, dir string) {
	mux.Handle("POST   /api/upload", Handler{Svc: svc})
	mux.Handle("DELETE /api/upload", DeleteHandler{Svc: svc})
	mux.Handle("GET    /uploads/", Static(dir))
}

// Static serves stored files. Directory listings are not exposed.
func Static(dir string) http.Handler {
	files := http.StripPrefix(strings.TrimSuffix(entity.UploadsPathPrefix, "/"), http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

type Handler struct {
	Svc *uploadUC.Service
}

// ServeHTTP handles POST /api/upload.
//
// @Summary      Upload a file
// @Description  Stores a file under the folder of its type. The content type is detected from the file bytes.
// @Tags         upload
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "File"
// @Param        type    formData  string  false  "image, audio, video, document, dataset or general"
// @Param        folder  formData  string  false  "Alias of type"
// @Success      201 {object} entity.StoredFile
// @Failure      400 {string} string "Bad request"
// @Failure      413 {string} string "File too large"
// @Router       /api/upload [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.Svc.Policy.MaxRequestBytes())
	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.RecordUpload(h.folderLabel(r.URL.Query().Get("type")), "rejected", 0)
			respond.SafeError(w, http.StatusRequestEntityTooLarge, entity.ErrTooLarge)
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) && !errors.Is(err, http.ErrMissingFile) {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid multipart form"))
			return
		}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	kind := r.FormValue("type")
	if kind == "" {
		kind = r.FormValue("folder")
	}

	var in uploadUC.File
	file, header, err := r.FormFile("file")
	if err == nil {
		defer func() { _ = file.Close() }()
		in = uploadUC.File{Name: header.Filename, Size: header.Size, Content: file}
	}

	stored, err := h.Svc.Upload(ctx, kind, in)
	if err != nil {
		metrics.RecordUpload(h.folderLabel(kind), "rejected", 0)
		logger.Warn("upload rejected", slog.String("type", kind), slog.Any("error", err))
		respond.DomainError(w, err)
		return
	}

	metrics.RecordUpload(stored.Folder, "success", stored.Size)
	logger.Info("file uploaded",
		slog.String("url", stored.URL),
		slog.String("mime", stored.MIME),
		slog.Int64("size", stored.Size))
	respond.JSON(w, http.StatusCreated, stored)
}

// folderLabel keeps the metric label set bounded to configured folders.
func (h Handler) folderLabel(kind string) string {
	if kind == "" {
		kind = uploadUC.DefaultKind
	}
	if rule, ok := h.Svc.Policy.Rule(strings.ToLower(kind)); ok {
		return rule.Folder
	}
	return "unknown"
}

type DeleteHandler struct {
	Svc *uploadUC.Service
}

// ServeHTTP handles DELETE /api/upload?url=/uploads/...
//
// @Summary      Delete an uploaded file
// @Tags         upload
// @Security     BearerAuth
// @Param        url  query  string  true  "Public URL returned by the upload"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request"
// @Failure      404 {string} string "Not found"
// @Router       /api/upload [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.URL.Query().Get("url")); err != nil {
		respond.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
