package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/shared/server/respond"
	"mitrahire-backend/internal/shared/telemetry"
)

// Recovery turns panics into standardized 500 responses. A panic caused
// by the client hanging up gets logged without a response attempt.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      fmt.Sprintf("%v", rec),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			}

			if isBrokenPipe(rec) {
				telemetry.Error("panic.client_gone", fields)
				c.Abort()
				return
			}

			fields["stack"] = string(debug.Stack())
			telemetry.Error("panic", fields)
			respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
		}()
		c.Next()
	}
}

func isBrokenPipe(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var syscallErr *os.SyscallError
	if !errors.As(opErr.Err, &syscallErr) {
		return false
	}
	return errors.Is(syscallErr.Err, syscall.EPIPE) || errors.Is(syscallErr.Err, syscall.ECONNRESET)
}
