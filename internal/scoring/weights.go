package scoring

import "github.com/vbonduro/boxbox/internal/domain"

type Metric string

const (
	MetricSpeed       Metric = "speed"
	MetricReliability Metric = "reliability"
	MetricStrategy    Metric = "strategy"
	MetricInnovation  Metric = "innovation"
	MetricPitCrew     Metric = "pitCrew"
)

// scoredMetrics are the metrics folded from member attributes. Overall is
// derived from them afterwards.
var scoredMetrics = []Metric{MetricSpeed, MetricReliability, MetricStrategy, MetricInnovation, MetricPitCrew}

type weight struct {
	attr   domain.Attribute
	factor float64
}

type weightTable map[Metric][]weight

// roleWeights declares, per role, which attributes feed which metric and by
// how much.
var roleWeights = map[domain.Role]weightTable{
	domain.RoleDriver: {
		MetricSpeed:       {{domain.AttrSkill, 0.8}, {domain.AttrAggression, 0.6}},
		MetricReliability: {{domain.AttrFocus, 0.7}, {domain.AttrExperience, 0.6}},
		MetricStrategy:    {{domain.AttrStrategy, 0.4}},
	},
	domain.RoleEngineer: {
		MetricSpeed:       {{domain.AttrTechnical, 0.5}},
		MetricReliability: {{domain.AttrTechnical, 0.6}, {domain.AttrFocus, 0.4}},
		MetricInnovation:  {{domain.AttrTechnical, 0.8}, {domain.AttrExperience, 0.4}},
	},
	domain.RoleMechanic: {
		MetricReliability: {{domain.AttrTechnical, 0.7}, {domain.AttrFocus, 0.5}},
		MetricPitCrew:     {{domain.AttrSkill, 0.5}, {domain.AttrTeamwork, 0.4}},
	},
	domain.RoleStrategist: {
		MetricStrategy:    {{domain.AttrStrategy, 0.9}, {domain.AttrExperience, 0.5}},
		MetricReliability: {{domain.AttrFocus, 0.3}},
	},
	domain.RoleTeamPrincipal: {
		MetricStrategy:    {{domain.AttrLeadership, 0.5}, {domain.AttrStrategy, 0.4}},
		MetricReliability: {{domain.AttrLeadership, 0.3}, {domain.AttrExperience, 0.3}},
		MetricInnovation:  {{domain.AttrLeadership, 0.3}},
	},
	domain.RoleTechnicalDirector: {
		MetricInnovation:  {{domain.AttrTechnical, 0.9}, {domain.AttrLeadership, 0.4}},
		MetricSpeed:       {{domain.AttrTechnical, 0.4}},
		MetricReliability: {{domain.AttrExperience, 0.4}},
	},
	domain.RolePitCrew: {
		MetricPitCrew: {
			{domain.AttrSkill, 0.8}, {domain.AttrFitness, 0.6},
			{domain.AttrTeamwork, 0.6}, {domain.AttrFocus, 0.5},
		},
	},
}

// fallbackWeights apply to any role without an entry in roleWeights.
var fallbackWeights = func() weightTable {
	flat := []weight{{domain.AttrSkill, 0.2}, {domain.AttrExperience, 0.2}, {domain.AttrTeamwork, 0.2}}
	t := make(weightTable, len(scoredMetrics))
	for _, m := range scoredMetrics {
		t[m] = flat
	}
	return t
}()

func weightsFor(role domain.Role) weightTable {
	if t, ok := roleWeights[role]; ok {
		return t
	}
	return fallbackWeights
}
