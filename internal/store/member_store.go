package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vbonduro/boxbox/internal/domain"
)

const memberColumns = `id, name, role, nationality, age, bio, attributes, portrait_key, created_at, updated_at`

type MemberStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewMemberStore(db *sqlx.DB) *MemberStore {
	return &MemberStore{db: db, now: now}
}

func (s *MemberStore) Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	id := uuid.NewString()
	ts := s.now()

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO team_members (id, name, role, nationality, age, bio, attributes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), id, m.Name, m.Role, m.Nationality, m.Age, m.Bio, m.Attributes, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns the member with id, or nil if there is none.
func (s *MemberStore) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	if !isID(id) {
		return nil, nil
	}
	m := &domain.TeamMember{}
	err := s.db.GetContext(ctx, m, s.db.Rebind(`SELECT `+memberColumns+` FROM team_members WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	return m, nil
}

func (s *MemberStore) List(ctx context.Context, opts ListOptions) ([]*domain.TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members`
	var where []string
	var args []any
	if opts.Role != "" {
		where = append(where, `role = ?`)
		args = append(args, opts.Role)
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		where = append(where, `LOWER(name) LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(q))
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ` + opts.orderClause()
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	var members []*domain.TeamMember
	if err := s.db.SelectContext(ctx, &members, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return members, nil
}

// Update overwrites the editable fields of m. The portrait is left alone.
func (s *MemberStore) Update(ctx context.Context, m *domain.TeamMember) error {
	if !isID(m.ID) {
		return notFound("team member")
	}
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE team_members
		SET name = ?, role = ?, nationality = ?, age = ?, bio = ?, attributes = ?, updated_at = ?
		WHERE id = ?
	`), m.Name, m.Role, m.Nationality, m.Age, m.Bio, m.Attributes, s.now(), m.ID)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}

	return expectOneRow(result, "team member")
}

// SetPortrait records the storage key of the member's portrait. An empty key
// clears it.
func (s *MemberStore) SetPortrait(ctx context.Context, id, key string) error {
	if !isID(id) {
		return notFound("team member")
	}
	var value *string
	if key != "" {
		value = &key
	}

	result, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE team_members SET portrait_key = ?, updated_at = ? WHERE id = ?
	`), value, s.now(), id)
	if err != nil {
		return fmt.Errorf("failed to set portrait: %w", err)
	}

	return expectOneRow(result, "team member")
}

func (s *MemberStore) Delete(ctx context.Context, id string) error {
	if !isID(id) {
		return notFound("team member")
	}
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM team_members WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	return expectOneRow(result, "team member")
}

func (s *MemberStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM team_members`); err != nil {
		return 0, fmt.Errorf("failed to count team members: %w", err)
	}
	return n, nil
}
