package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

// Delayer pauses a failing request.
type Delayer interface {
	Wait(ctx context.Context)
}

// RandomDelay waits a uniformly random duration in [Min, Max].
type RandomDelay struct {
	Min time.Duration
	Max time.Duration
}

// Wait blocks for a random duration or until ctx is done.
func (d RandomDelay) Wait(ctx context.Context) {
	timer := time.NewTimer(d.next())
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (d RandomDelay) next() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(d.Max-d.Min)+1))
	if err != nil {
		return d.Max
	}
	return d.Min + time.Duration(n.Int64())
}
