// Package reminder holds the reminder entity and its repository.
// Reminders are namespaced by owner: listing and deletion only ever
// see the owner's own entries.
package reminder

import (
	"cmp"
	"errors"
	"fmt"

	"saltbot/metrics"
	"saltbot/state"
	"saltbot/store"
	"saltbot/timelength"

	"golang.org/x/exp/slices"
)

var (
	ErrNotFound = errors.New("reminder does not exist")
	ErrCorrupt  = errors.New("reminder entry is corrupt")
)

type Reminder struct {
	ID      string `json:"unique_id" validate:"required"`
	Owner   string `json:"owner" validate:"required"`
	Message string `json:"msg"`
	Channel string `json:"channel" validate:"required"`
	Expiry  int64  `json:"expiry" validate:"required"`
}

// Repo stores one file per reminder under the owner's namespace
// directory.
type Repo struct {
	store *store.Store
}

func NewRepo(s *store.Store) *Repo {
	return &Repo{store: s}
}

// Create resolves the duration and persists a reminder under the
// owner's namespace. Owners with path separators in them are rejected
// by the store.
func (r *Repo) Create(owner, message, channel, unit, amount string) (*Reminder, error) {
	tl, err := timelength.Resolve(unit, amount)
	if err != nil {
		return nil, err
	}

	rem := &Reminder{
		ID:      tl.ID,
		Owner:   owner,
		Message: message,
		Channel: channel,
		Expiry:  tl.Expiry,
	}

	err = r.store.Put(owner, rem.ID, rem)
	if err != nil {
		return nil, err
	}

	return rem, nil
}

func (r *Repo) Load(owner, id string) (*Reminder, error) {
	var rem Reminder
	err := r.store.Get(owner, id, &rem)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case errors.Is(err, store.ErrCorrupt):
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	case err != nil:
		return nil, err
	}

	err = state.Validator.Struct(&rem)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}

	return &rem, nil
}

// ListByOwner returns the owner's reminders sorted by expiry, soonest
// first. Corrupt entries are counted and skipped, never fatal.
func (r *Repo) ListByOwner(owner string) ([]*Reminder, error) {
	ids, err := r.store.List(owner)
	if err != nil {
		return nil, err
	}

	reminders := make([]*Reminder, 0, len(ids))
	for _, id := range ids {
		rem, err := r.Load(owner, id)
		if errors.Is(err, ErrCorrupt) {
			metrics.CorruptEntries.WithLabelValues("reminder").Inc()
			state.Logger.Errorw("skipping corrupt reminder", "owner", owner, "id", id, "error", err)
			continue
		}

		if errors.Is(err, ErrNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		reminders = append(reminders, rem)
	}

	slices.SortFunc(reminders, func(a, b *Reminder) int {
		return cmp.Compare(a.Expiry, b.Expiry)
	})

	return reminders, nil
}

// ListAll enumerates every owner namespace, used only by the expiry
// monitor's sweep.
func (r *Repo) ListAll() ([]*Reminder, error) {
	owners, err := r.store.Namespaces()
	if err != nil {
		return nil, err
	}

	var reminders []*Reminder
	for _, owner := range owners {
		owned, err := r.ListByOwner(owner)
		if err != nil {
			return nil, err
		}

		reminders = append(reminders, owned...)
	}

	return reminders, nil
}

// Delete removes a reminder and reports a missing one as ErrNotFound.
// The explicit delete command surfaces that to the user, the monitor
// tolerates it.
func (r *Repo) Delete(owner, id string) error {
	err := r.store.Delete(owner, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return err
}
