package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"time"
)

// Do runs fn once and, when it fails with a transient infrastructure error,
// retries up to retries more times. Waits double starting from base, so
// Do(ctx, 3, time.Second, fn) sleeps 1s, 2s, 4s between tries. Non-transient
// errors return immediately.
func Do(ctx context.Context, retries int, base time.Duration, fn func() error) error {
	err := fn()
	if err == nil || !Transient(err) {
		return err
	}
	delay := base
	for i := 0; i < retries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if err = fn(); err == nil || !Transient(err) {
			return err
		}
		delay *= 2
	}
	return err
}

// Transient reports whether err looks like a temporary infrastructure
// failure worth retrying: timeouts, refused or reset connections, dropped
// streams. Validation and state errors are never transient.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return false
}
