// Package poll holds the poll entity and its repository. Polls are
// created by the poll command, mutated by votes and destroyed by the
// expiry monitor once results have been announced.
package poll

import (
	"fmt"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
)

// Poll is a transient in-memory view of one stored entry. The
// repository owns the on-disk representation, nothing shares a Poll
// across requests.
type Poll struct {
	ID      string              `json:"unique_id" validate:"required"`
	Prompt  string              `json:"prompt" validate:"required"`
	Choices []string            `json:"choices" validate:"required,min=1"`
	Votes   map[string][]string `json:"votes"`
	Expiry  int64               `json:"expiry" validate:"required"`
	Channel string              `json:"channel" validate:"required"`
}

// Tally is the vote count per choice index plus the total.
type Tally struct {
	Total     int
	PerChoice []int
}

func (p *Poll) voters(choice int) mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(p.Votes[strconv.Itoa(choice)]...)
}

// Tally counts each choice's voter set. Stored vote lists may carry
// duplicates only if written by hand, the set collapses them.
func (p *Poll) Tally() Tally {
	t := Tally{PerChoice: make([]int, len(p.Choices))}
	for idx := range p.Choices {
		n := p.voters(idx).Cardinality()
		t.PerChoice[idx] = n
		t.Total += n
	}

	return t
}

// FormatResults renders the results message the monitor announces
// when the poll expires. A poll no one voted on gets its own message
// instead of a division by zero.
func (p *Poll) FormatResults() string {
	t := p.Tally()
	if t.Total == 0 {
		return "```No one voted on this poll :(```"
	}

	msg := fmt.Sprintf("```Results for \"%s\" (Total votes: %d):\n\n", p.Prompt, t.Total)
	for idx, choice := range p.Choices {
		pct := float64(t.PerChoice[idx]) / float64(t.Total) * 100.0
		msg += fmt.Sprintf("\t%s -> %.0f%%\n", choice, pct)
	}

	return msg + "```"
}
