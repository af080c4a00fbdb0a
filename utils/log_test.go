package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLogMessage(t *testing.T) {
	assert.Equal(t, "cat .png", SanitizeLogMessage("cat\n.png"))
	assert.Equal(t, "evil", SanitizeLogMessage("ev\x00il\x1b"))
}

func TestSanitizeLogFilename_Truncates(t *testing.T) {
	long := strings.Repeat("a", 200) + ".png"
	got := SanitizeLogFilename(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, []rune(got), 83)
}
