// Package donation implements the mock donation processor behind
// POST /api/donate. It performs no payment authorization, writes no ledger
// and keeps no state between calls.
package donation

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"ganpati/internal/domain"
)

const (
	// DefaultDelay is the configured gateway latency unless DONATION_DELAY_MS
	// says otherwise.
	DefaultDelay = 2 * time.Second

	transactionPrefix = "GNP"
	suffixLength      = 6
	base36Alphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Result is what the endpoint hands back for an accepted donation.
type Result struct {
	TransactionID string
	Amount        int64
	Timestamp     time.Time
}

// Options configures a Service. A zero Delay answers immediately; nil Now
// and RandInt use the clock and math/rand.
type Options struct {
	Delay   time.Duration
	Now     func() time.Time
	RandInt func(n int) int
}

// Service validates donation requests and fabricates transaction ids.
type Service struct {
	delay   time.Duration
	now     func() time.Time
	randInt func(n int) int
}

// NewService builds a Service. A negative delay is treated as zero.
func NewService(opts Options) *Service {
	s := &Service{
		delay:   opts.Delay,
		now:     opts.Now,
		randInt: opts.RandInt,
	}
	if s.delay < 0 {
		s.delay = 0
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.randInt == nil {
		s.randInt = rand.Intn
	}
	return s
}

// Donate validates req, waits the simulated delay and returns a synthetic
// transaction. Validation failures wrap the domain sentinel errors. The wait
// is abandoned when ctx is done.
func (s *Service) Donate(ctx context.Context, req domain.DonationRequest) (*Result, error) {
	req.Normalize()
	amount, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	return &Result{
		TransactionID: NewTransactionID(now, s.randInt),
		Amount:        amount,
		Timestamp:     now.UTC(),
	}, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewTransactionID concatenates the prefix, the base36 millisecond clock and
// a random base36 suffix. Ids are not guaranteed unique.
func NewTransactionID(now time.Time, randInt func(n int) int) string {
	if randInt == nil {
		randInt = rand.Intn
	}
	var b strings.Builder
	b.WriteString(transactionPrefix)
	b.WriteString(strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)))
	for i := 0; i < suffixLength; i++ {
		b.WriteByte(base36Alphabet[randInt(len(base36Alphabet))])
	}
	return b.String()
}
