// Package ratelimit provides the token-bucket limiter used to shield
// the assessment API from misbehaving clients.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket refilled at a fixed rate.
type Limiter struct {
	mu         sync.Mutex
	tokens     float64
	burst      float64
	perSecond  float64
	lastRefill time.Time
}

// New creates a limiter allowing perSecond sustained requests with the
// given burst capacity. Non-positive arguments fall back to 10/20.
func New(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &Limiter{
		tokens:     float64(burst),
		burst:      float64(burst),
		perSecond:  perSecond,
		lastRefill: time.Now(),
	}
}

// Allow reports whether a request may proceed, consuming one token if so.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.tokens += now.Sub(l.lastRefill).Seconds() * l.perSecond
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.lastRefill = now

	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}
