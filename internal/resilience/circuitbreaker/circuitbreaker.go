// Package circuitbreaker wraps github.com/sony/gobreaker for outbound calls.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrOpenState is returned without calling out while the circuit is open.
var ErrOpenState = gobreaker.ErrOpenState

// Config describes when a breaker trips and how it recovers.
type Config struct {
	Name string
	// MaxRequests is how many trial calls half-open lets through.
	MaxRequests uint32
	// Interval clears the closed-state counts; Timeout is the open period.
	Interval time.Duration
	Timeout  time.Duration
	// The circuit opens once at least MinRequests calls were seen and
	// the failure ratio reaches FailureThreshold (0.8 = 80%).
	FailureThreshold float64
	MinRequests      uint32
}

// NewsFetchConfig is used for news page fetches.
// Scrapes are operator triggered and rare, so three failures in a row are enough to trip.
func NewsFetchConfig() Config {
	return Config{
		Name:             "news-fetch",
		MaxRequests:      1,
		Interval:         5 * time.Minute,
		Timeout:          2 * time.Minute,
		FailureThreshold: 0.8,
		MinRequests:      3,
	}
}

// CircuitBreaker is a named gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New builds a breaker from cfg. State changes are logged at warn level.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{
		name: cfg.Name,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: tripAt(cfg.MinRequests, cfg.FailureThreshold),
			// 呼び出し側のキャンセルはリモートの失敗ではない
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		}),
	}
}

func tripAt(minRequests uint32, ratio float64) func(gobreaker.Counts) bool {
	return func(c gobreaker.Counts) bool {
		if c.Requests < minRequests {
			return false
		}
		return float64(c.TotalFailures)/float64(c.Requests) >= ratio
	}
}

// Do runs fn through the breaker, returning ErrOpenState while open.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.breaker.Execute(func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func (cb *CircuitBreaker) State() gobreaker.State { return cb.breaker.State() }

func (cb *CircuitBreaker) Name() string { return cb.name }

func (cb *CircuitBreaker) IsOpen() bool { return cb.State() == gobreaker.StateOpen }
