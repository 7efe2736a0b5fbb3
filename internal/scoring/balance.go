package scoring

import (
	"fmt"
	"math"

	"github.com/vbonduro/boxbox/internal/domain"
)

// idealShare is the target fraction of the team each role should make up.
var idealShare = map[domain.Role]float64{
	domain.RoleDriver:            0.25,
	domain.RoleEngineer:          0.20,
	domain.RoleMechanic:          0.15,
	domain.RoleStrategist:        0.15,
	domain.RoleTeamPrincipal:     0.10,
	domain.RoleTechnicalDirector: 0.10,
	domain.RolePitCrew:           0.05,
}

// keyRolePoints are awarded once per key role present; they sum to 100.
var keyRolePoints = []struct {
	role   domain.Role
	points int
}{
	{domain.RoleDriver, 40},
	{domain.RoleEngineer, 30},
	{domain.RoleTeamPrincipal, 30},
}

// TeamBalance scores how the team is structured, each on a 0-100 scale.
type TeamBalance struct {
	Balance      int `json:"balance"`
	Coverage     int `json:"coverage"`
	KeyRoles     int `json:"keyRoles"`
	Completeness int `json:"completeness"`
	FilledRoles  int `json:"filledRoles"`
	TotalRoles   int `json:"totalRoles"`
}

// RoleCount is the number of members holding a role.
type RoleCount struct {
	Role  domain.Role `json:"role"`
	Count int         `json:"count"`
}

// Composition counts members per role. Known roles come first in canonical
// order and only when present; unknown roles follow in order of appearance.
func Composition(members []*domain.TeamMember) []RoleCount {
	counts := countRoles(members)

	out := make([]RoleCount, 0, len(counts))
	for _, p := range domain.Roles {
		if n := counts[p.Role]; n > 0 {
			out = append(out, RoleCount{Role: p.Role, Count: n})
		}
	}
	seen := make(map[domain.Role]bool)
	for _, m := range members {
		if m == nil || domain.IsRole(m.Role) || seen[m.Role] {
			continue
		}
		seen[m.Role] = true
		out = append(out, RoleCount{Role: m.Role, Count: counts[m.Role]})
	}
	return out
}

// Balance measures role coverage, how close the role mix is to the ideal
// distribution, and whether the key roles are filled.
func Balance(members []*domain.TeamMember) TeamBalance {
	counts := countRoles(members)
	total := 0
	for _, m := range members {
		if m != nil {
			total++
		}
	}

	b := TeamBalance{TotalRoles: len(domain.Roles)}
	for _, p := range domain.Roles {
		if counts[p.Role] > 0 {
			b.FilledRoles++
		}
	}
	b.Coverage = int(math.Round(float64(b.FilledRoles) / float64(b.TotalRoles) * 100))

	if total > 0 {
		diff := 0.0
		for _, p := range domain.Roles {
			actual := float64(counts[p.Role]) / float64(total)
			diff += math.Abs(idealShare[p.Role] - actual)
		}
		score := int(math.Round((1 - diff/2) * 100))
		b.Balance = max(0, min(100, score))
	}

	for _, kr := range keyRolePoints {
		if counts[kr.role] > 0 {
			b.KeyRoles += kr.points
		}
	}

	b.Completeness = int(math.Round(float64(b.Balance+b.Coverage+b.KeyRoles) / 3))
	return b
}

// PredictPosition maps the overall score to an expected championship
// finishing band.
func PredictPosition(overall float64, teamSize int) string {
	switch {
	case teamSize == 0:
		return "N/A"
	case overall >= 9:
		return "1st - 2nd"
	case overall >= 8:
		return "2nd - 3rd"
	case overall >= 7:
		return "3rd - 5th"
	case overall >= 6:
		return "5th - 7th"
	case overall >= 5:
		return "7th - 8th"
	case overall >= 4:
		return "8th - 9th"
	default:
		return "10th"
	}
}

type InsightLevel string

const (
	InsightWarning InsightLevel = "warning"
	InsightInfo    InsightLevel = "info"
	InsightSuccess InsightLevel = "success"
	InsightEmpty   InsightLevel = "empty"
)

type Insight struct {
	Level   InsightLevel `json:"level"`
	Message string       `json:"message"`
}

// Insights lists structural advice for the team.
func Insights(members []*domain.TeamMember, metrics Metrics) []Insight {
	counts := countRoles(members)
	if len(counts) == 0 {
		return []Insight{{Level: InsightEmpty, Message: "Add team members to get performance insights"}}
	}

	var out []Insight
	if counts[domain.RoleDriver] == 0 {
		out = append(out, Insight{InsightWarning, "Your team needs at least one driver to compete in races"})
	}
	if counts[domain.RoleEngineer] == 0 {
		out = append(out, Insight{InsightWarning, "Adding an engineer would improve your car development"})
	}
	if counts[domain.RoleTeamPrincipal] == 0 {
		out = append(out, Insight{InsightWarning, "A team principal would help with overall management"})
	}
	if n := counts[domain.RoleDriver]; n > 2 {
		out = append(out, Insight{InsightInfo, fmt.Sprintf("You have %d drivers. F1 teams typically have 2 main drivers.", n)})
	}
	if metrics.PitCrew < 5 && counts[domain.RoleDriver] > 0 {
		out = append(out, Insight{InsightInfo, "Your pit crew rating is low. Consider improving this area to reduce pit stop times."})
	}
	if metrics.Overall >= 8 {
		out = append(out, Insight{InsightSuccess, "Your team has championship potential! Well-balanced across all departments."})
	}
	return out
}

// strengthLabels names the strength shown for each attribute rated highly.
var strengthLabels = []struct {
	attr  domain.Attribute
	label string
}{
	{domain.AttrSkill, "High Skill Level"},
	{domain.AttrExperience, "Highly Experienced"},
	{domain.AttrTeamwork, "Excellent Team Player"},
	{domain.AttrFocus, "Strong Focus"},
	{domain.AttrFitness, "Exceptional Fitness"},
	{domain.AttrAggression, "Highly Aggressive"},
	{domain.AttrTechnical, "Technical Expert"},
	{domain.AttrLeadership, "Strong Leader"},
	{domain.AttrStrategy, "Strategic Mastermind"},
}

const strengthThreshold = 8

// Strengths returns a label for every attribute rated at least 8.
func Strengths(attrs domain.Attributes) []string {
	var out []string
	for _, s := range strengthLabels {
		if v, ok := attrs.Get(s.attr); ok && v >= strengthThreshold {
			out = append(out, s.label)
		}
	}
	return out
}

func countRoles(members []*domain.TeamMember) map[domain.Role]int {
	counts := make(map[domain.Role]int)
	for _, m := range members {
		if m != nil {
			counts[m.Role]++
		}
	}
	return counts
}
