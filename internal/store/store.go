package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/boxbox/internal/domain"
)

type Order string

const (
	OrderNewest Order = "desc"
	OrderOldest Order = "asc"
)

// ListOptions controls ordering and size of a List call. The zero value lists
// every record newest first.
type ListOptions struct {
	Order Order
	Limit int
	// Role restricts member listings to one role. Ignored for cars.
	Role string
	// Query keeps members whose name contains it, ignoring case. Ignored for
	// cars.
	Query string
}

func (o ListOptions) orderClause() string {
	if o.Order == OrderOldest {
		return "ORDER BY created_at ASC, name ASC"
	}
	return "ORDER BY created_at DESC, name ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching q anywhere, lower-cased, with
// its wildcards taken literally.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// ParseOrder maps user input onto an Order, defaulting to newest first.
func ParseOrder(s string) Order {
	switch s {
	case "asc", "oldest":
		return OrderOldest
	default:
		return OrderNewest
	}
}

func now() time.Time {
	return time.Now().UTC()
}

// isID reports whether id is a canonical UUID. Anything else cannot name a
// stored record, and the postgres uuid columns reject it outright.
func isID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(kind string) error {
	return fmt.Errorf("%s: %w", kind, domain.ErrNotFound)
}

// expectOneRow turns a mutation that touched no rows into domain.ErrNotFound.
func expectOneRow(result sql.Result, kind string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound(kind)
	}

	return nil
}
