package utils

import (
	"strings"
	"unicode"
)

// SanitizeLogMessage 去除不可打印字符，防止日志注入
func SanitizeLogMessage(msg string) string {
	var sb strings.Builder
	for _, r := range msg {
		if r == '\n' || r == '\r' {
			sb.WriteRune(' ')
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeLogFilename 用户上传的原始文件名，截断后再记录
func SanitizeLogFilename(name string) string {
	if r := []rune(name); len(r) > 80 {
		name = string(r[:80]) + "..."
	}
	return SanitizeLogMessage(name)
}
