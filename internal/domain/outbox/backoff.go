package outbox

import (
	"crypto/rand"
	"math/big"
	"time"
)

// BackoffPolicy decides when a failed entry is retried and when it is given up on.
type BackoffPolicy struct {
	Base        time.Duration
	Max         time.Duration
	MaxAttempts int
	// Jitter returns a value in [0, d). Nil means no jitter.
	Jitter func(d time.Duration) time.Duration
}

// Delay is base * 2^(attempt-1), capped at Max, plus up to 20% jitter.
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.Base
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.Max > 0 && d >= p.Max {
			d = p.Max
			break
		}
	}
	if p.Max > 0 && d > p.Max {
		d = p.Max
	}
	if p.Jitter != nil {
		d += p.Jitter(d / 5)
	}
	return d
}

// Outcome is the bookkeeping for one failed attempt.
type Outcome struct {
	Attempts      int
	NextAttemptAt time.Time
	DeadLettered  bool
}

// Fail records a failed attempt against e. attempts counts the one that just failed.
func (p BackoffPolicy) Fail(e Entry, now time.Time) Outcome {
	attempts := e.Attempts + 1
	if attempts >= p.MaxAttempts {
		return Outcome{Attempts: attempts, NextAttemptAt: now, DeadLettered: true}
	}
	return Outcome{Attempts: attempts, NextAttemptAt: now.Add(p.Delay(attempts))}
}

// CryptoJitter draws uniformly from [0, d).
func CryptoJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(d)))
	if err != nil {
		return 0
	}
	return time.Duration(n.Int64())
}
