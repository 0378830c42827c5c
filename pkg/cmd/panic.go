package cmd

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/neuraops/dashboard/pkg/log"
)

// HandleAppPanic logs the value returned by recover in the caller's deferred function.
func HandleAppPanic(ctx context.Context, logger log.Logger, recovered any) (panicCaught bool) {
	if recovered == nil {
		return false
	}

	logger.WithField("panic", log.Fields{
		"message": fmt.Sprint(recovered),
		"stack":   string(debug.Stack()),
	}).Error(ctx, "app failed with panic")
	return true
}
