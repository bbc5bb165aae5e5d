package backoff

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	cbackoff "github.com/cenkalti/backoff/v5"

	"github.com/x-xyz/dustsweep/base/log"
)

// Policy bounds a retry loop. The zero value means a single attempt.
type Policy struct {
	MaxTries       uint
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxElapsed     time.Duration
}

// DefaultPolicy is used by upstream http clients for rate limits and 5xx
var DefaultPolicy = Policy{
	MaxTries:       3,
	InitialBackoff: 300 * time.Millisecond,
	MaxBackoff:     2 * time.Second,
	MaxElapsed:     10 * time.Second,
}

// TransientError marks an error worth another attempt
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err so Retry keeps trying
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err is a marked transient error, a network timeout or a rate limit
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return IsRateLimited(err)
}

// IsRateLimited matches the rate limit replies of common rpc and http providers
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "-32005") ||
		strings.Contains(msg, "status 429")
}

// Retry runs op until it succeeds, returns a non transient error, or the policy is exhausted.
// The returned error is the last one op produced.
func Retry[T any](ctx context.Context, policy Policy, op func() (T, error)) (T, error) {
	if policy.MaxTries <= 1 {
		return op()
	}

	eb := cbackoff.NewExponentialBackOff()
	if policy.InitialBackoff > 0 {
		eb.InitialInterval = policy.InitialBackoff
	}
	if policy.MaxBackoff > 0 {
		eb.MaxInterval = policy.MaxBackoff
	}

	attempt := 0
	res, err := cbackoff.Retry(ctx, func() (T, error) {
		attempt++
		res, err := op()
		if err != nil && !IsTransient(err) {
			return res, cbackoff.Permanent(err)
		}
		return res, err
	},
		cbackoff.WithBackOff(eb),
		cbackoff.WithMaxTries(policy.MaxTries),
		cbackoff.WithMaxElapsedTime(policy.MaxElapsed),
		cbackoff.WithNotify(func(err error, next time.Duration) {
			log.Log().WithFields(log.Fields{
				"err":     err,
				"attempt": attempt,
				"next":    next,
			}).Warn("retrying after transient error")
		}),
	)

	var perm *cbackoff.PermanentError
	if errors.As(err, &perm) {
		return res, perm.Err
	}
	return res, err
}
