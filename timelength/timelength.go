// Package timelength resolves "<amount> <unit>" pairs like "5 minutes"
// into an absolute expiry and mints the storage id for the entry being
// created.
package timelength

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUnit   = errors.New("invalid time unit")
	ErrInvalidAmount = errors.New("invalid time amount")
)

var unitSeconds = map[string]int64{
	"year":    31536000,
	"years":   31536000,
	"month":   2592000,
	"months":  2592000,
	"week":    604800,
	"weeks":   604800,
	"day":     86400,
	"days":    86400,
	"hour":    3600,
	"hours":   3600,
	"minute":  60,
	"minutes": 60,
	"second":  1,
	"seconds": 1,
}

// TimeLength is the result of one resolution: a fresh id to store the
// entry under and the unix epoch at which it expires.
type TimeLength struct {
	ID     string
	Expiry int64
}

// Resolve maps unit+amount onto a TimeLength. The amount must be a
// non-negative integer small enough not to overflow the epoch math.
func Resolve(unit string, amount string) (*TimeLength, error) {
	secs, ok := unitSeconds[unit]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	if n > math.MaxInt64/secs {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	return &TimeLength{
		ID:     NewID(),
		Expiry: time.Now().Unix() + n*secs,
	}, nil
}

// NewID returns the first 16 hex chars (64 bits) of a fresh v4 UUID.
// Short enough to type into a chat command, enough entropy that two
// mints never collide in practice.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
