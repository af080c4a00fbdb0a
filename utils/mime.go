package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var safeExtPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// NormalizeMimeType 去除参数并转为小写，如 "Image/PNG; q=1" -> "image/png"
func NormalizeMimeType(mimeType string) string {
	mimeType = strings.Split(mimeType, ";")[0]
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// SafeExtension 从不可信文件名中取出扩展名（小写）
// 不满足 ^\.[a-z0-9]{1,10}$ 的扩展名一律丢弃
func SafeExtension(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !safeExtPattern.MatchString(ext) {
		return ""
	}
	return ext
}
