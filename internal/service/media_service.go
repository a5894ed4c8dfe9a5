package service

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type MediaService struct {
	StorageService *StorageService
}

func NewMediaService(storageService *StorageService) *MediaService {
	return &MediaService{StorageService: storageService}
}

type VideoUploadResult struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// UploadVideo validates the extension and sniffed MIME type, probes the
// video locally, then hands the file to the configured storage backend.
func (s *MediaService) UploadVideo(ctx context.Context, fh *multipart.FileHeader) (*VideoUploadResult, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, util.NewValidationError("file", "unsupported video extension %s", ext)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo, "application/octet-stream"})
	if err != nil {
		return nil, util.NewValidationError("file", "not a video: %s", mimeType)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	// ffprobe needs a path on disk.
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		logger.Log.Warn("video probe failed", zap.String("file", fh.Filename), zap.Error(err))
		info = &util.VideoInfo{Size: fh.Size}
	}

	url, err := s.StorageService.UploadMultipart(ctx, fh, "videos")
	if err != nil {
		return nil, err
	}

	return &VideoUploadResult{
		URL:      url,
		Duration: info.Duration,
		Width:    info.Width,
		Height:   info.Height,
		Format:   info.Format,
		Size:     info.Size,
	}, nil
}
