package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"chirp/internal/cache"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedExtensions is the upload extension allowlist. Checked before any
// disk or database write happens.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// MediaService handles media uploads and retrieval.
type MediaService struct {
	mediaRepo repository.MediaRepository
	uploadDir string
	maxBytes  int64
}

// NewMediaService returns a new MediaService storing files under uploadDir.
func NewMediaService(mediaRepo repository.MediaRepository, uploadDir string, maxUploadMB int) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		uploadDir: uploadDir,
		maxBytes:  int64(maxUploadMB) << 20,
	}
}

// Upload validates and stores an uploaded file, returning the new media id.
// Validation order matters: reject bad extensions before touching disk or the
// database so a failed upload leaves no trace.
func (s *MediaService) Upload(ctx context.Context, uploaderID uint, fileHeader *multipart.FileHeader) (uint, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return 0, models.NewFileError(fmt.Sprintf("file extension %q is not allowed", ext))
	}
	if s.maxBytes > 0 && fileHeader.Size > s.maxBytes {
		return 0, models.NewFileError("file exceeds the maximum upload size")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return 0, models.NewFileError("could not read uploaded file")
	}
	defer src.Close()

	// The extension is attacker-controlled, so sniff the actual bytes too.
	sniff := make([]byte, 512)
	n, err := io.ReadFull(src, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, models.NewFileError("could not read uploaded file")
	}
	if ct := http.DetectContentType(sniff[:n]); !strings.HasPrefix(ct, "image/") {
		return 0, models.NewFileError(fmt.Sprintf("file content %q is not an image", ct))
	}

	name := sanitizeFilename(fileHeader.Filename)
	path := filepath.Join(s.uploadDir, uuid.NewString()+"_"+name)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return 0, models.NewInternalError(err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(sniff[:n]), src))
	if err != nil {
		os.Remove(path)
		return 0, models.NewInternalError(err)
	}
	middleware.MediaUploadBytes.Add(float64(written))

	media := &models.Media{
		Path:       path,
		UploaderID: uploaderID,
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		os.Remove(path)
		return 0, err
	}

	return media.ID, nil
}

// Path resolves a media id to the stored file path.
func (s *MediaService) Path(ctx context.Context, id uint) (string, error) {
	var path string
	err := cache.Aside(ctx, cache.MediaPathKey(id), &path, cache.MediaPathTTL, func() error {
		media, err := s.mediaRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		path = media.Path
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.NewNotFoundError(models.ErrTypeInvalidMediaID, "media does not exist")
		}
		return "", err
	}
	return path, nil
}

// sanitizeFilename keeps only the base name and replaces anything outside a
// conservative character set.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
