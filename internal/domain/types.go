package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Car struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Team      string    `db:"team" json:"team"`
	Engine    string    `db:"engine" json:"engine"`
	TopSpeed  float64   `db:"top_speed" json:"top_speed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type TeamMember struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Role        Role       `db:"role" json:"role"`
	Nationality string     `db:"nationality" json:"nationality"`
	Age         int        `db:"age" json:"age"`
	Bio         string     `db:"bio" json:"bio"`
	Attributes  Attributes `db:"attributes" json:"attributes"`
	PortraitKey *string    `db:"portrait_key" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// HasPortrait reports whether an uploaded portrait is stored for the member.
func (m *TeamMember) HasPortrait() bool {
	return m.PortraitKey != nil && *m.PortraitKey != ""
}

// Attributes maps an attribute name to its 1-10 rating. It is persisted as a
// JSON object column.
type Attributes map[Attribute]int

func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes: %w", err)
	}
	return string(b), nil
}

func (a *Attributes) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Attributes{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported attributes column type %T", src)
	}

	out := Attributes{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("failed to decode attributes: %w", err)
		}
	}
	*a = out
	return nil
}

// Get returns the rating for attr and whether it is set.
func (a Attributes) Get(attr Attribute) (int, bool) {
	v, ok := a[attr]
	return v, ok
}
