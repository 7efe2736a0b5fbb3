package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbonduro/boxbox/internal/domain"
)

func member(role domain.Role, attrs domain.Attributes) *domain.TeamMember {
	return &domain.TeamMember{Name: string(role), Role: role, Attributes: attrs}
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, Metrics{}, Aggregate(nil))
	assert.Equal(t, Metrics{}, Aggregate([]*domain.TeamMember{}))
}

func TestAggregateSingleDriver(t *testing.T) {
	driver := member(domain.RoleDriver, domain.Attributes{
		domain.AttrSkill:      10,
		domain.AttrAggression: 10,
		domain.AttrFocus:      10,
		domain.AttrExperience: 10,
		domain.AttrStrategy:   10,
	})

	got := Aggregate([]*domain.TeamMember{driver})

	assert.Equal(t, 10.0, got.Speed)
	assert.Equal(t, 10.0, got.Reliability)
	assert.Equal(t, 10.0, got.Strategy)
	assert.Equal(t, 0.0, got.Innovation)
	assert.Equal(t, 0.0, got.PitCrew)
	assert.Equal(t, 6.0, got.Overall)
}

func TestAggregateWeightedMean(t *testing.T) {
	driver := member(domain.RoleDriver, domain.Attributes{
		domain.AttrSkill:      9,
		domain.AttrAggression: 5,
	})

	got := Aggregate([]*domain.TeamMember{driver})

	// (9*0.8 + 5*0.6) / 1.4 = 7.2857...
	assert.Equal(t, 7.3, got.Speed)
	assert.Equal(t, 0.0, got.Reliability)
}

func TestAggregateSkipsMissingAttributes(t *testing.T) {
	driver := member(domain.RoleDriver, domain.Attributes{domain.AttrSkill: 6})

	got := Aggregate([]*domain.TeamMember{driver})

	assert.Equal(t, 6.0, got.Speed)
	assert.Equal(t, 0.0, got.Reliability)
	assert.Equal(t, 0.0, got.Strategy)
}

func TestAggregateUnknownRoleUsesFlatWeights(t *testing.T) {
	caterer := member("Caterer", domain.Attributes{
		domain.AttrSkill:      4,
		domain.AttrExperience: 6,
		domain.AttrTeamwork:   8,
		domain.AttrAggression: 10,
	})

	got := Aggregate([]*domain.TeamMember{caterer})

	for _, m := range scoredMetrics {
		assert.Equal(t, 6.0, got.Get(m), "metric %s", m)
	}
	assert.Equal(t, 6.0, got.Overall)
}

func TestAggregateMixedTeamStaysInRange(t *testing.T) {
	var team []*domain.TeamMember
	for _, p := range domain.Roles {
		attrs := domain.Attributes{}
		for _, a := range domain.AllAttributes {
			attrs[a] = 7
		}
		team = append(team, member(p.Role, attrs))
	}

	got := Aggregate(team)

	for _, m := range scoredMetrics {
		assert.Equal(t, 7.0, got.Get(m), "metric %s", m)
	}
	assert.Equal(t, 7.0, got.Overall)
}

func TestAggregateOrderIndependent(t *testing.T) {
	a := member(domain.RoleDriver, domain.Attributes{domain.AttrSkill: 9, domain.AttrFocus: 3})
	b := member(domain.RolePitCrew, domain.Attributes{domain.AttrSkill: 4, domain.AttrFitness: 8})
	c := member(domain.RoleStrategist, domain.Attributes{domain.AttrStrategy: 7, domain.AttrFocus: 6})

	assert.Equal(t,
		Aggregate([]*domain.TeamMember{a, b, c}),
		Aggregate([]*domain.TeamMember{c, a, b}),
	)
}

func TestRating(t *testing.T) {
	tests := []struct {
		name  string
		attrs domain.Attributes
		want  int
	}{
		{"empty", nil, 0},
		{"single", domain.Attributes{domain.AttrSkill: 7}, 7},
		{"rounds half up", domain.Attributes{domain.AttrSkill: 7, domain.AttrFocus: 8}, 8},
		{"rounds down", domain.Attributes{domain.AttrSkill: 7, domain.AttrFocus: 7, domain.AttrFitness: 8}, 7},
		{"all ten", domain.Attributes{domain.AttrSkill: 10, domain.AttrLeadership: 10}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rating(tt.attrs))
		})
	}
}
