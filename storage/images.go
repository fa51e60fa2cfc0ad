// Package storage saves uploaded product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const MaxFileSize = 10 * 1024 * 1024 // 10MB

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var (
	ErrTooLarge       = fmt.Errorf("file too large, maximum is %dMB", MaxFileSize/(1024*1024))
	ErrUnsupportedExt = errors.New("file format not supported, use JPG, PNG, GIF or WEBP")
)

// ImageStore keeps an uploaded image and returns the URL it is served from.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// Check validates size and extension and returns the lower-case extension.
func Check(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxFileSize {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedExt
	}
	return ext, nil
}

// FileName builds the stored name of an upload: the form field, a
// millisecond timestamp and a random suffix.
func FileName(field, ext string) string {
	return fmt.Sprintf("%s_%d_%s%s", field, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

// Local writes images under Dir; they are served at BaseURL + "/images/".
type Local struct {
	Dir     string
	BaseURL string
}

// NewLocal creates dir if needed.
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext, err := Check(file)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := FileName("product", ext)
	dst, err := os.OpenFile(filepath.Join(l.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return l.BaseURL + "/images/" + name, nil
}

// Cloudinary uploads images to a Cloudinary folder.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary configures uploads from a cloudinary:// URL.
func NewCloudinary(url, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext, err := Check(file)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	publicID := strings.TrimSuffix(FileName("product", ext), ext)
	result, err := c.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:   c.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}
