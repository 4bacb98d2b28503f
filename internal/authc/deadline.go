package authc

import (
	"context"
	"errors"
	"net"
	"time"
)

// armDeadline bounds everything done under the returned context by timeout,
// measured from now. A non-positive timeout leaves ctx unbounded.
func armDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// bindConn makes blocked reads and writes on conn return as soon as ctx is
// done. The returned function detaches the binding.
func bindConn(ctx context.Context, conn net.Conn) func() bool {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	return context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
}

// expired reports whether ctx ran past its deadline. The clock is consulted as
// well because a socket deadline can trip just before the context notices.
func expired(ctx context.Context) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	deadline, ok := ctx.Deadline()
	return ok && !time.Now().Before(deadline)
}
