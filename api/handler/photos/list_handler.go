package photos

import (
	"log"
	"net/http"

	"github.com/anoixa/photo-gallery/api/common"
	"github.com/gin-gonic/gin"
)

// ListPhotos 获取全部照片
// GET /photos
func (h *Handler) ListPhotos(c *gin.Context) {
	list, err := h.query.List(c.Request.Context())
	if err != nil {
		log.Printf("[Photos] Failed to list photos: %v", err)
		common.RespondErrorKind(c, http.StatusInternalServerError, "internal_error", "failed to list photos")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": list})
}
