// Package expiry runs the background sweep that announces and removes
// expired polls and reminders.
package expiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saltbot/metrics"
	"saltbot/poll"
	"saltbot/reminder"
	"saltbot/state"

	"github.com/getsentry/sentry-go"
)

// Notifier delivers an expired entry's payload to its channel. It
// returns failure instead of panicking when the channel cannot be
// resolved anymore.
type Notifier interface {
	Notify(channelID, text string) error
}

type Monitor struct {
	polls       *poll.Repo
	reminders   *reminder.Repo
	notifier    Notifier
	interval    time.Duration
	maxAttempts int

	// Failed delivery attempts per entry id. Only the monitor
	// goroutine touches this.
	attempts map[string]int
}

func New(polls *poll.Repo, reminders *reminder.Repo, n Notifier, interval time.Duration, maxAttempts int) *Monitor {
	return &Monitor{
		polls:       polls,
		reminders:   reminders,
		notifier:    n,
		interval:    interval,
		maxAttempts: maxAttempts,
		attempts:    map[string]int{},
	}
}

// Loop sweeps on a fixed interval until the context is cancelled.
func (m *Monitor) Loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			state.Logger.Info("expiry monitor stopped")
			return

		case <-time.After(m.interval):
			m.sweep()
		}
	}
}

// sweep runs one expiry cycle. Delivery happens before deletion: a
// crash in between re-delivers on restart, which beats losing the
// entry outright.
func (m *Monitor) sweep() {
	now := time.Now().Unix()

	polls, err := m.polls.List()
	if err != nil {
		state.Logger.Errorw("failed to list polls", "error", err)
	}

	for _, p := range polls {
		if p.Expiry > now {
			continue
		}

		p := p
		m.deliver("poll", p.ID, p.Channel, p.FormatResults(), func() error {
			return m.polls.Delete(p.ID)
		})
	}

	reminders, err := m.reminders.ListAll()
	if err != nil {
		state.Logger.Errorw("failed to list reminders", "error", err)
	}

	for _, rem := range reminders {
		if rem.Expiry > now {
			continue
		}

		rem := rem
		m.deliver("reminder", rem.ID, rem.Channel, fmt.Sprintf("```%s```", rem.Message), func() error {
			err := m.reminders.Delete(rem.Owner, rem.ID)
			if errors.Is(err, reminder.ErrNotFound) {
				// Deleted by the user mid-sweep
				return nil
			}

			return err
		})
	}
}

// deliver notifies and then removes one expired entry. On failure the
// entry is kept for the next sweep until maxAttempts is reached, then
// dropped so one dead channel cannot poison every future cycle.
func (m *Monitor) deliver(kind, id, channel, text string, remove func() error) {
	err := m.notifier.Notify(channel, text)
	if err != nil {
		metrics.DeliveryFailures.WithLabelValues(kind).Inc()
		m.attempts[id]++
		if m.attempts[id] < m.maxAttempts {
			state.Logger.Errorw("delivery failed, will retry next sweep",
				"kind", kind, "id", id, "channel", channel, "attempt", m.attempts[id], "error", err)
			return
		}

		metrics.DeliveriesAbandoned.WithLabelValues(kind).Inc()
		state.Logger.Errorw("giving up on delivery", "kind", kind, "id", id, "channel", channel, "error", err)
		sentry.CaptureException(fmt.Errorf("abandoned %s %s after %d delivery attempts: %w", kind, id, m.attempts[id], err))
	} else {
		metrics.Deliveries.WithLabelValues(kind).Inc()
		state.Logger.Infow("delivered expired entry", "kind", kind, "id", id, "channel", channel)
	}

	delete(m.attempts, id)

	err = remove()
	if err != nil {
		state.Logger.Errorw("failed to delete delivered entry", "kind", kind, "id", id, "error", err)
	}
}
