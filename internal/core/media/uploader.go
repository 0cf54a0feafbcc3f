package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/prometheus/client_golang/prometheus"

	"ace-marketplace/internal/core/config"
)

// Uploader 把图片交给外部对象存储，返回可长期访问的 URL
type Uploader interface {
	Upload(ctx context.Context, img Image) (string, error)
}

var ErrUploadDisabled = errors.New("image upload is not configured")

var uploadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "image_uploads_total", Help: "Image uploads by result"},
	[]string{"result"},
)

func init() { prometheus.MustRegister(uploadsTotal) }

// Disabled 未配置存储时使用：所有上传失败
type Disabled struct{}

func (Disabled) Upload(context.Context, Image) (string, error) {
	uploadsTotal.WithLabelValues("disabled").Inc()
	return "", ErrUploadDisabled
}

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewUploader 按配置选择实现
func NewUploader(c config.Upload) (Uploader, error) {
	if !c.Enabled() {
		return Disabled{}, nil
	}
	return NewCloudinary(c)
}

func NewCloudinary(c config.Upload) (*Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if c.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(c.CloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(c.CloudName, c.APIKey, c.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: c.Folder}, nil
}

func (u *Cloudinary) Upload(ctx context.Context, img Image) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, img.DataURI(), uploader.UploadParams{
		ResourceType: "image",
		Folder:       u.folder,
	})
	if err != nil {
		uploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		uploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		uploadsTotal.WithLabelValues("error").Inc()
		return "", errors.New("cloudinary upload: empty secure_url")
	}
	uploadsTotal.WithLabelValues("ok").Inc()
	return res.SecureURL, nil
}
