package poll

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"saltbot/metrics"
	"saltbot/state"
	"saltbot/store"
	"saltbot/timelength"
)

const namespace = "polls"

var (
	// ErrNotFound covers both never-existed and already-expired, the
	// caller cannot tell the difference and neither can we.
	ErrNotFound      = errors.New("poll does not exist")
	ErrCorrupt       = errors.New("poll entry is corrupt")
	ErrInvalidChoice = errors.New("no such choice")
)

type Repo struct {
	store *store.Store

	// Serializes load+mutate+save per poll id so two simultaneous
	// votes cannot drop each other.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRepo(s *store.Store) *Repo {
	return &Repo{store: s, locks: map[string]*sync.Mutex{}}
}

func (r *Repo) lock(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}

	return l
}

// Create mints an id and expiry from the duration, builds a poll with
// an empty voter set per choice and persists it.
func (r *Repo) Create(prompt string, choices []string, channel, unit, amount string) (*Poll, error) {
	tl, err := timelength.Resolve(unit, amount)
	if err != nil {
		return nil, err
	}

	votes := make(map[string][]string, len(choices))
	for idx := range choices {
		votes[strconv.Itoa(idx)] = []string{}
	}

	p := &Poll{
		ID:      tl.ID,
		Prompt:  prompt,
		Choices: choices,
		Votes:   votes,
		Expiry:  tl.Expiry,
		Channel: channel,
	}

	err = r.Save(p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Load fetches a poll by id. Records that parse but are missing
// required fields count as corrupt, not as valid polls.
func (r *Repo) Load(id string) (*Poll, error) {
	var p Poll
	err := r.store.Get(namespace, id, &p)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case errors.Is(err, store.ErrCorrupt):
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	case err != nil:
		return nil, err
	}

	err = state.Validator.Struct(&p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}

	return &p, nil
}

func (r *Repo) Save(p *Poll) error {
	err := state.Validator.Struct(p)
	if err != nil {
		return fmt.Errorf("refusing to save invalid poll: %w", err)
	}

	return r.store.Put(namespace, p.ID, p)
}

// Delete removes a poll. A missing entry is not an error: the monitor
// and an explicit delete can race and deletion is terminal either way.
func (r *Repo) Delete(id string) error {
	err := r.store.Delete(namespace, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	return err
}

// List returns every live poll. Corrupt entries are logged, counted
// and skipped so one bad file cannot stall an expiry sweep, the file
// itself is left in place for inspection.
func (r *Repo) List() ([]*Poll, error) {
	ids, err := r.store.List(namespace)
	if err != nil {
		return nil, err
	}

	polls := make([]*Poll, 0, len(ids))
	for _, id := range ids {
		p, err := r.Load(id)
		if errors.Is(err, ErrCorrupt) {
			metrics.CorruptEntries.WithLabelValues("poll").Inc()
			state.Logger.Errorw("skipping corrupt poll", "id", id, "error", err)
			continue
		}

		if errors.Is(err, ErrNotFound) {
			// Deleted between listing and loading
			continue
		}

		if err != nil {
			return nil, err
		}

		polls = append(polls, p)
	}

	return polls, nil
}

// CastVote moves voter into the chosen choice's voter set, removing
// it from every other set first so a voter backs at most one choice.
// It does not persist, callers batch validation and then Save.
func (r *Repo) CastVote(p *Poll, voter string, choice int) error {
	if choice < 0 || choice >= len(p.Choices) {
		return fmt.Errorf("%w: %d", ErrInvalidChoice, choice+1)
	}

	for idx := range p.Choices {
		voters := p.voters(idx)
		voters.Remove(voter)
		if idx == choice {
			voters.Add(voter)
		}

		p.Votes[strconv.Itoa(idx)] = voters.ToSlice()
	}

	return nil
}

// CastVoteAndSave is the vote command surface: load, mutate, persist,
// all under the poll's lock. The choice is one-based as typed by the
// user.
func (r *Repo) CastVoteAndSave(id, voter string, choiceOneBased int) (*Poll, error) {
	l := r.lock(id)
	l.Lock()
	defer l.Unlock()

	p, err := r.Load(id)
	if err != nil {
		return nil, err
	}

	err = r.CastVote(p, voter, choiceOneBased-1)
	if err != nil {
		return nil, err
	}

	err = r.Save(p)
	if err != nil {
		return nil, err
	}

	return p, nil
}
