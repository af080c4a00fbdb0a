package photo

import "errors"

// 上传管线的错误类型，handler 通过 errors.Is 映射为响应
var (
	ErrNoFileProvided     = errors.New("no file provided")
	ErrInvalidFileType    = errors.New("only JPEG, PNG, GIF and WEBP images are allowed")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrStorageFailure     = errors.New("failed to store file")
	ErrPersistenceFailure = errors.New("failed to save photo metadata")
	ErrOwnerRequired      = errors.New("an owner is required to upload photos")
)
