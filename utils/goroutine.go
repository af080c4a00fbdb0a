package utils

import (
	"log"
	"runtime/debug"
)

// SafeGo 启动带名称的 goroutine，panic 只记录不扩散
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[SafeGo] %s panic recovered: %v\n%s", name, err, debug.Stack())
			}
		}()
		fn()
	}()
}
