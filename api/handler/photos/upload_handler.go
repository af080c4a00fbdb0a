package photos

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/anoixa/photo-gallery/internal/services/photo"
	"github.com/anoixa/photo-gallery/utils"
	"github.com/gin-gonic/gin"
)

var errNoFilePart = errors.New("no file part in request")

// nextFilePart 返回第一个文件部分，跳过普通表单字段
func nextFilePart(reader *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errNoFilePart
			}
			return nil, err
		}
		if part.FileName() != "" {
			return part, nil
		}
		if _, err := io.Copy(io.Discard, part); err != nil {
			return nil, err
		}
	}
}

// UploadPhoto 处理照片上传，文件内容以流的方式写入存储
// POST /photos
func (h *Handler) UploadPhoto(c *gin.Context) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		respondError(c, photo.ErrNoFileProvided)
		return
	}

	part, err := nextFilePart(reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, errRequestTooLarge)
			return
		}
		respondError(c, photo.ErrNoFileProvided)
		return
	}
	defer part.Close()

	ownerID, err := h.owners.ResolveOwner(c.Request.Context())
	if err != nil {
		respondError(c, photo.ErrOwnerRequired)
		return
	}

	size := int64(-1)
	if v := part.Header.Get("Content-Length"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			size = n
		}
	}

	created, err := h.ingest.Ingest(c.Request.Context(), photo.IngestRequest{
		File: &photo.FilePart{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Reader:      part,
			Size:        size,
		},
		OwnerID: ownerID,
	})
	if err != nil {
		if utils.IsClientDisconnect(err) {
			log.Printf("[Photos] Client disconnected during upload of %s", utils.SanitizeLogFilename(part.FileName()))
			c.Abort()
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Photo uploaded successfully",
		"photo":   created,
	})
}
