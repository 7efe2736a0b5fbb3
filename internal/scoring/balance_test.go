package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/boxbox/internal/domain"
)

func TestBalanceEmptyTeam(t *testing.T) {
	b := Balance(nil)

	assert.Equal(t, 0, b.Balance)
	assert.Equal(t, 0, b.Coverage)
	assert.Equal(t, 0, b.KeyRoles)
	assert.Equal(t, 0, b.Completeness)
	assert.Equal(t, 7, b.TotalRoles)
}

func TestBalanceSingleDriver(t *testing.T) {
	b := Balance([]*domain.TeamMember{member(domain.RoleDriver, nil)})

	// One of seven roles filled.
	assert.Equal(t, 14, b.Coverage)
	// |0.25-1| + 0.75 of missing share = 1.5 total difference.
	assert.Equal(t, 25, b.Balance)
	assert.Equal(t, 40, b.KeyRoles)
	assert.Equal(t, 26, b.Completeness)
	assert.Equal(t, 1, b.FilledRoles)
}

func TestBalanceIdealTeam(t *testing.T) {
	// 20 members in exactly the ideal proportions.
	plan := map[domain.Role]int{
		domain.RoleDriver:            5,
		domain.RoleEngineer:          4,
		domain.RoleMechanic:          3,
		domain.RoleStrategist:        3,
		domain.RoleTeamPrincipal:     2,
		domain.RoleTechnicalDirector: 2,
		domain.RolePitCrew:           1,
	}
	var team []*domain.TeamMember
	for role, n := range plan {
		for j := 0; j < n; j++ {
			team = append(team, member(role, nil))
		}
	}

	b := Balance(team)

	assert.Equal(t, 100, b.Balance)
	assert.Equal(t, 100, b.Coverage)
	assert.Equal(t, 100, b.KeyRoles)
	assert.Equal(t, 100, b.Completeness)
}

func TestBalanceIgnoresUnknownRolesForCoverage(t *testing.T) {
	b := Balance([]*domain.TeamMember{member("Caterer", nil), member(domain.RoleEngineer, nil)})

	assert.Equal(t, 1, b.FilledRoles)
	assert.Equal(t, 30, b.KeyRoles)
}

func TestComposition(t *testing.T) {
	team := []*domain.TeamMember{
		member(domain.RolePitCrew, nil),
		member("Caterer", nil),
		member(domain.RoleDriver, nil),
		member(domain.RoleDriver, nil),
	}

	assert.Equal(t, []RoleCount{
		{Role: domain.RoleDriver, Count: 2},
		{Role: domain.RolePitCrew, Count: 1},
		{Role: "Caterer", Count: 1},
	}, Composition(team))
}

func TestPredictPosition(t *testing.T) {
	tests := []struct {
		overall float64
		size    int
		want    string
	}{
		{9.5, 3, "1st - 2nd"},
		{9.0, 3, "1st - 2nd"},
		{8.4, 3, "2nd - 3rd"},
		{7.0, 3, "3rd - 5th"},
		{6.2, 3, "5th - 7th"},
		{5.0, 3, "7th - 8th"},
		{4.9, 3, "8th - 9th"},
		{1.0, 3, "10th"},
		{9.9, 0, "N/A"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PredictPosition(tt.overall, tt.size), "overall %.1f size %d", tt.overall, tt.size)
	}
}

func TestInsightsEmptyTeam(t *testing.T) {
	got := Insights(nil, Metrics{})

	require.Len(t, got, 1)
	assert.Equal(t, InsightEmpty, got[0].Level)
}

func TestInsightsMissingRolesAndWeakPitCrew(t *testing.T) {
	team := []*domain.TeamMember{
		member(domain.RoleDriver, nil),
		member(domain.RoleDriver, nil),
		member(domain.RoleDriver, nil),
	}

	got := Insights(team, Metrics{PitCrew: 3, Overall: 5})

	levels := make([]InsightLevel, 0, len(got))
	for _, in := range got {
		levels = append(levels, in.Level)
	}
	assert.Equal(t, []InsightLevel{InsightWarning, InsightWarning, InsightInfo, InsightInfo}, levels)
	assert.Contains(t, got[2].Message, "You have 3 drivers")
}

func TestInsightsChampionshipPotential(t *testing.T) {
	team := []*domain.TeamMember{
		member(domain.RoleDriver, nil),
		member(domain.RoleEngineer, nil),
		member(domain.RoleTeamPrincipal, nil),
	}

	got := Insights(team, Metrics{PitCrew: 8, Overall: 8.2})

	require.Len(t, got, 1)
	assert.Equal(t, InsightSuccess, got[0].Level)
}

func TestStrengths(t *testing.T) {
	attrs := domain.Attributes{
		domain.AttrSkill:      8,
		domain.AttrStrategy:   10,
		domain.AttrAggression: 7,
	}

	assert.Equal(t, []string{"High Skill Level", "Strategic Mastermind"}, Strengths(attrs))
	assert.Empty(t, Strengths(nil))
}
