package utils

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var (
	ErrUnsafePath  = errors.New("unsafe path detected")
	ErrEmptyPath   = errors.New("path cannot be empty")
	ErrPathTooLong = errors.New("path is too long")
)

const MaxPathLength = 500

var dangerousChars = regexp.MustCompile(`[<>:"|?*\x00-\x1f\x7f]`)

// ValidateObjectKey ตรวจ key ที่ client ส่งมา (เช่น signed-url) ก่อนส่งต่อให้ storage
func ValidateObjectKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyPath
	}
	if len(key) > MaxPathLength {
		return "", ErrPathTooLong
	}
	key = strings.ReplaceAll(key, "\\", "/")
	if strings.Contains(key, "..") || filepath.IsAbs(key) || strings.HasPrefix(key, "/") {
		return "", ErrUnsafePath
	}
	if dangerousChars.MatchString(key) {
		return "", ErrUnsafePath
	}
	return key, nil
}

// BuildObjectKey สร้าง storage key: <folder>/<ownerID>/<slug>-<random>.<ext>
func BuildObjectKey(folder, ownerID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || dangerousChars.MatchString(ext) {
		ext = ""
	}

	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "file"
	}
	if len(base) > 60 {
		base = strings.Trim(base[:60], "-")
	}

	return folder + "/" + ownerID + "/" + base + "-" + GenerateRandomString(8) + ext
}
