// Package goroutine guards background work against panics.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/licensehub/licensehub/internal/shared/logger"
)

// Recover logs a recovered panic. It must be deferred directly.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
