package infra

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"landadmin.com/internal/config"
	"landadmin.com/internal/domain"
)

// UploadPrefix 上传图片的 URL 前缀，数据库中存相对路径
const UploadPrefix = "/Uploads"

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ImageStore saves uploaded property images under a local directory and
// materializes stored relative paths into absolute URLs.
type ImageStore struct {
	dir     string
	maxSize int64
	baseURL string
}

func NewImageStore(cfg config.UploadsConfig, baseURL string) (*ImageStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &ImageStore{dir: cfg.Dir, maxSize: cfg.MaxSize, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the local directory images are stored in.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file to disk and returns the stored relative
// path (e.g. "/Uploads/169...-uuid.png").
func (s *ImageStore) Save(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", domain.NewBadRequestError("only .png, .jpg, and .jpeg formats allowed")
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", domain.NewBadRequestError("image exceeds the maximum allowed size")
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	if err := c.SaveFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", domain.NewInternalError("failed to store image", err)
	}
	return UploadPrefix + "/" + name, nil
}

// Remove deletes a stored image. Missing files and non-upload paths are
// ignored.
func (s *ImageStore) Remove(storedPath string) error {
	if !strings.HasPrefix(storedPath, UploadPrefix+"/") {
		return nil
	}
	local := filepath.Join(s.dir, filepath.Base(storedPath))
	if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ResolveURL turns a stored relative path into an absolute URL. Values that
// are already absolute (or empty) pass through unchanged.
func (s *ImageStore) ResolveURL(storedPath string) string {
	if strings.HasPrefix(storedPath, UploadPrefix+"/") {
		return s.baseURL + storedPath
	}
	return storedPath
}
