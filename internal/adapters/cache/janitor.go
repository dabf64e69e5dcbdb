package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// janitor runs a repository's Cleanup on a fixed interval until stopped
type janitor struct {
	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

// startJanitor starts cleanup every freq. A non-positive freq starts
// nothing; stop is still safe to call.
func startJanitor(freq time.Duration, cleanup func(context.Context) error, logger *zap.Logger) *janitor {
	j := &janitor{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}

	if freq <= 0 {
		close(j.done)
		return j
	}

	go func() {
		defer close(j.done)

		ticker := time.NewTicker(freq)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := cleanup(context.Background()); err != nil {
					logger.Error("Failed to clean up MX cache", zap.Error(err))
				}
			case <-j.stopCh:
				return
			}
		}
	}()

	return j
}

// stop ends the cleanup loop and waits for it to exit.
// It reports whether this call did the stopping.
func (j *janitor) stop() bool {
	stopped := false
	j.once.Do(func() {
		close(j.stopCh)
		stopped = true
	})
	<-j.done
	return stopped
}

// cacheKey is the form domains are stored under
func cacheKey(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
