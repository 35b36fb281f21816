package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ItemScope restricts an item query or mutation to records owned by one
// subject, optionally pinned to a single record id. The predicate never
// reveals whether a non-matching record exists under another owner.
type ItemScope struct {
	OwnerID string
	ItemID  *string
}

// OwnerScope scopes collection operations (list, create) to an owner.
func OwnerScope(ownerID string) ItemScope {
	return ItemScope{OwnerID: ownerID}
}

// RecordScope scopes single-record operations to {id, owner}.
func RecordScope(ownerID, itemID string) ItemScope {
	return ItemScope{OwnerID: ownerID, ItemID: &itemID}
}

// Predicate renders the WHERE clause and its arguments. Placeholders start
// at $offset+1 so callers can prepend their own arguments.
func (s ItemScope) Predicate(offset int) (string, []any) {
	clauses := []string{fmt.Sprintf("owner_id=$%d", offset+1)}
	args := []any{s.OwnerID}

	if s.ItemID != nil {
		args = append(args, *s.ItemID)
		clauses = append(clauses, fmt.Sprintf("id=$%d", offset+len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

// ValidRecordID reports whether an id is structurally valid. Malformed ids
// short-circuit to not-found before any query runs.
func ValidRecordID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
