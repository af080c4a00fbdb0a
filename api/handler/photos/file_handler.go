package photos

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/anoixa/photo-gallery/api/common"
	"github.com/anoixa/photo-gallery/storage"
	"github.com/anoixa/photo-gallery/utils"
	"github.com/anoixa/photo-gallery/utils/pool"
	"github.com/gin-gonic/gin"
)

// ServeFile 按生成的文件名返回已存储的照片
// GET {static_url_prefix}/:filename
func (h *Handler) ServeFile(c *gin.Context) {
	filename := c.Param("filename")
	if !storage.IsValidIdentifier(filename) {
		common.RespondErrorKind(c, http.StatusNotFound, "not_found", "file not found")
		return
	}

	obj, err := h.storage.GetWithContext(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			common.RespondErrorKind(c, http.StatusNotFound, "not_found", "file not found")
			return
		}
		log.Printf("[Photos] Failed to open %s: %v", filename, err)
		common.RespondErrorKind(c, http.StatusInternalServerError, "storage_failure", "failed to read file")
		return
	}
	defer obj.Reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType != "" {
		c.Header("Content-Type", contentType)
	}
	c.Header("Cache-Control", "public, max-age=2592000, immutable")
	c.Header("X-Content-Type-Options", "nosniff")

	if rs, ok := obj.Reader.(io.ReadSeeker); ok {
		http.ServeContent(c.Writer, c.Request, filename, obj.ModTime, rs)
		return
	}

	if contentType == "" {
		c.Header("Content-Type", "application/octet-stream")
	}
	if obj.Size >= 0 {
		c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	c.Status(http.StatusOK)
	if c.Request.Method == http.MethodHead {
		return
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if _, err := io.CopyBuffer(c.Writer, obj.Reader, *buf); err != nil && !utils.IsClientDisconnect(err) {
		log.Printf("[Photos] Failed to stream %s: %v", filename, err)
	}
}
