package photos

import (
	"errors"
	"net/http"

	"github.com/anoixa/photo-gallery/api/common"
	"github.com/anoixa/photo-gallery/internal/services/photo"
	"github.com/anoixa/photo-gallery/storage"
	"github.com/gin-gonic/gin"
)

// Handler 照片处理器
type Handler struct {
	ingest  *photo.IngestService
	query   *photo.QueryService
	owners  photo.OwnerResolver
	storage storage.Provider
}

// NewHandler 创建照片处理器
func NewHandler(ingest *photo.IngestService, query *photo.QueryService, owners photo.OwnerResolver, provider storage.Provider) *Handler {
	return &Handler{
		ingest:  ingest,
		query:   query,
		owners:  owners,
		storage: provider,
	}
}

// errRequestTooLarge 文件部分之前的表单字段已耗尽请求体上限
var errRequestTooLarge = errors.New("request body exceeds the allowed size")

type errorMapping struct {
	err    error
	status int
	kind   string
}

var errorMappings = []errorMapping{
	{photo.ErrNoFileProvided, http.StatusBadRequest, "no_file_provided"},
	{photo.ErrInvalidFileType, http.StatusBadRequest, "invalid_file_type"},
	{photo.ErrFileTooLarge, http.StatusBadRequest, "file_too_large"},
	{errRequestTooLarge, http.StatusRequestEntityTooLarge, "request_too_large"},
	{photo.ErrOwnerRequired, http.StatusUnauthorized, "owner_required"},
	{photo.ErrStorageFailure, http.StatusInternalServerError, "storage_failure"},
	{photo.ErrPersistenceFailure, http.StatusInternalServerError, "persistence_failure"},
}

// respondError 将上传错误映射为状态码和稳定的错误信息
func respondError(c *gin.Context, err error) {
	// 请求体超过上限时 MaxBytesReader 中断读取
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		err = photo.ErrFileTooLarge
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			common.RespondErrorKind(c, m.status, m.kind, m.err.Error())
			return
		}
	}
	common.RespondErrorKind(c, http.StatusInternalServerError, "internal_error", "internal server error")
}
