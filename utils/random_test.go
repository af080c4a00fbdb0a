package utils

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateHexID_Length 测试十六进制长度
func TestGenerateHexID_Length(t *testing.T) {
	for _, n := range []int{8, 16, 32} {
		id, err := GenerateHexID(n)
		require.NoError(t, err)
		assert.Len(t, id, n*2)
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), id)
	}
}

// TestGenerateHexID_ConcurrentUniqueness 测试并发唯一性
func TestGenerateHexID_ConcurrentUniqueness(t *testing.T) {
	const goroutines = 50
	const perGoroutine = 20

	var mu sync.Mutex
	seen := make(map[string]struct{}, goroutines*perGoroutine)
	var wg sync.WaitGroup

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				id, err := GenerateHexID(16)
				assert.NoError(t, err)
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*perGoroutine)
}

// TestGenerateSlug 测试 slug 字符集与长度
func TestGenerateSlug(t *testing.T) {
	slug, err := GenerateSlug(16)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{16}$`), slug)

	other, err := GenerateSlug(16)
	require.NoError(t, err)
	assert.NotEqual(t, slug, other)
}
