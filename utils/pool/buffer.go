package pool

import "sync"

// BufferSize 流式传输使用的缓冲区大小（64KB）
const BufferSize = 64 * 1024

// 存储 *[]byte 以避免 SA6002 警告
var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, BufferSize)
		return &buf
	},
}

// GetBuffer 从池中取出缓冲区，用完后必须 PutBuffer
func GetBuffer() *[]byte {
	return bufferPool.Get().(*[]byte)
}

// PutBuffer 归还缓冲区
func PutBuffer(buf *[]byte) {
	if buf == nil || cap(*buf) < BufferSize {
		return
	}
	*buf = (*buf)[:BufferSize]
	bufferPool.Put(buf)
}
