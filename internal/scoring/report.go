package scoring

import (
	"sort"

	"github.com/vbonduro/boxbox/internal/domain"
)

// MemberScore pairs a member with its rating and strengths.
type MemberScore struct {
	Member    *domain.TeamMember `json:"member"`
	Rating    int                `json:"rating"`
	Strengths []string           `json:"strengths"`
}

// Report is everything the performance page shows about a team.
type Report struct {
	TeamSize          int           `json:"teamSize"`
	Metrics           Metrics       `json:"metrics"`
	Balance           TeamBalance   `json:"balance"`
	PredictedPosition string        `json:"predictedPosition"`
	Composition       []RoleCount   `json:"composition"`
	Insights          []Insight     `json:"insights"`
	TopMembers        []MemberScore `json:"topMembers"`
}

const topMemberCount = 5

// BuildReport runs every team calculation over members.
func BuildReport(members []*domain.TeamMember) *Report {
	present := make([]*domain.TeamMember, 0, len(members))
	for _, m := range members {
		if m != nil {
			present = append(present, m)
		}
	}

	metrics := Aggregate(present)
	return &Report{
		TeamSize:          len(present),
		Metrics:           metrics,
		Balance:           Balance(present),
		PredictedPosition: PredictPosition(metrics.Overall, len(present)),
		Composition:       Composition(present),
		Insights:          Insights(present, metrics),
		TopMembers:        topMembers(present, topMemberCount),
	}
}

// topMembers returns the n highest rated members, ties broken by name.
func topMembers(members []*domain.TeamMember, n int) []MemberScore {
	scores := make([]MemberScore, 0, len(members))
	for _, m := range members {
		scores = append(scores, MemberScore{
			Member:    m,
			Rating:    Rating(m.Attributes),
			Strengths: Strengths(m.Attributes),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Rating != scores[j].Rating {
			return scores[i].Rating > scores[j].Rating
		}
		return scores[i].Member.Name < scores[j].Member.Name
	})
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores
}
