package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

const (
	MimePDF   = "application/pdf"
	MimeVideo = "video/"
	MimeImage = "image/"
)

var AllowedVideoExtensions = []string{".mp4", ".webm", ".mov", ".avi", ".mkv"}

// ValidateMimeType sniffs the first 512 bytes and checks the detected type
// against allowed prefixes or exact types, e.g. "image/", "application/pdf".
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == "application/x-mpegURL"
}
