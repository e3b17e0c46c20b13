// Package ledger defines the append-only points transaction log.
package ledger

import "time"

// Source identifies the record kind that produced a transaction.
type Source string

const (
	SourceTask      Source = "task"
	SourceHabit     Source = "habit"
	SourceChallenge Source = "challenge"
	SourceObjective Source = "objective"
)

// Transaction is one signed points entry. The ledger is an audit trail only;
// area scores are always re-derived from completion flags, never from here.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Points    int       `json:"points"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}
