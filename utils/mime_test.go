package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMimeType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"image/png", "image/png"},
		{"Image/PNG", "image/png"},
		{" image/jpeg ; charset=binary", "image/jpeg"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMimeType(tt.in))
		})
	}
}

func TestSafeExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"simple", "cat.png", ".png"},
		{"upper case", "CAT.JPG", ".jpg"},
		{"double ext", "archive.tar.gz", ".gz"},
		{"no ext", "README", ""},
		{"traversal", "../../etc/passwd", ""},
		{"traversal with ext", "../../../tmp/evil.webp", ".webp"},
		{"windows traversal", "..\\..\\evil.gif", ".gif"},
		{"slash in ext", "a.png/..", ""},
		{"weird chars", "photo.p$g", ""},
		{"too long", "photo.abcdefghijk", ""},
		{"dot only", "photo.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeExtension(tt.filename))
		})
	}
}
