package telemetry

import (
	"time"

	"github.com/getsentry/sentry-go"
)

var sentryEnabled bool

// InitSentry enables error reporting when dsn is set. The returned func
// flushes buffered events on shutdown.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		sentryEnabled = false
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          release,
		AttachStacktrace: true,
	}); err != nil {
		return func() {}, err
	}
	sentryEnabled = true
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// Capture reports err with tags; a no-op while Sentry is disabled.
func Capture(err error, tags map[string]string) {
	if !sentryEnabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}
