package media

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidImage = errors.New("invalid image payload")

// Image 解码后的上传载荷
type Image struct {
	MIME string
	Data []byte
}

// DataURI data:<mime>;base64,<...>
func (i Image) DataURI() string {
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// DecodeImage 接受 data URI 或裸 base64，按内容嗅探类型，必须是 image/*
func DecodeImage(payload string) (Image, error) {
	s := strings.TrimSpace(payload)
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 || !strings.HasSuffix(s[:comma], ";base64") {
			return Image{}, ErrInvalidImage
		}
		s = s[comma+1:]
	}
	if s == "" {
		return Image{}, ErrInvalidImage
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// 兼容不带 padding 的输入
		if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err != nil {
			return Image{}, ErrInvalidImage
		}
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Image{}, ErrInvalidImage
	}
	return Image{MIME: mt.String(), Data: data}, nil
}
