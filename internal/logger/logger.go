// Package logger wraps log/slog behind a small global facade.
package logger

import (
	"errors"
	"sync"
)

var (
	defaultLogger Logger
	mu            sync.RWMutex
	initialized   bool
)

// Init installs the global logger.
func Init(config Config) error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return errors.New("logger already initialized; call Shutdown before re-initializing")
	}

	l, err := NewSlogLogger(config)
	if err != nil {
		return err
	}
	defaultLogger = l
	initialized = true
	return nil
}

// Get returns the global logger, a NullLogger before Init.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()

	if !initialized {
		return NullLogger{}
	}
	return defaultLogger
}

// With returns a child of the global logger.
func With(args ...any) Logger {
	return Get().With(args...)
}

// Shutdown closes the global logger's writers.
func Shutdown() error {
	mu.Lock()
	if !initialized {
		mu.Unlock()
		return nil
	}
	l := defaultLogger
	defaultLogger = nil
	initialized = false
	mu.Unlock()

	return l.Shutdown()
}

// NullLogger discards everything.
type NullLogger struct{}

func (NullLogger) Debug(msg string, args ...any) {}
func (NullLogger) Info(msg string, args ...any)  {}
func (NullLogger) Warn(msg string, args ...any)  {}
func (NullLogger) Error(msg string, args ...any) {}
func (n NullLogger) With(args ...any) Logger     { return n }
func (NullLogger) Shutdown() error               { return nil }
