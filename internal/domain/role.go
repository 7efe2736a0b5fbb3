package domain

import "strings"

type Attribute string

const (
	AttrSkill      Attribute = "skill"
	AttrExperience Attribute = "experience"
	AttrFitness    Attribute = "fitness"
	AttrTeamwork   Attribute = "teamwork"
	AttrFocus      Attribute = "focus"
	AttrStrategy   Attribute = "strategy"
	AttrTechnical  Attribute = "technical"
	AttrLeadership Attribute = "leadership"
	AttrAggression Attribute = "aggression"
)

const (
	MinAttribute = 1
	MaxAttribute = 10
)

// AllAttributes lists every recognised attribute in display order.
var AllAttributes = []Attribute{
	AttrSkill, AttrExperience, AttrFitness, AttrTeamwork, AttrFocus,
	AttrStrategy, AttrTechnical, AttrLeadership, AttrAggression,
}

var attributeDescriptions = map[Attribute]string{
	AttrSkill:      "Overall skill level in their specific role",
	AttrExperience: "Years of experience and knowledge in F1",
	AttrFitness:    "Physical condition and endurance",
	AttrTeamwork:   "Ability to work effectively with others",
	AttrFocus:      "Concentration and attention to detail",
	AttrStrategy:   "Race strategy planning and decision making",
	AttrTechnical:  "Technical knowledge and problem-solving",
	AttrLeadership: "Ability to lead and inspire the team",
	AttrAggression: "Racing aggression and overtaking ability",
}

func (a Attribute) Label() string {
	s := string(a)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a Attribute) Description() string {
	return attributeDescriptions[a]
}

func IsAttribute(a Attribute) bool {
	_, ok := attributeDescriptions[a]
	return ok
}

type Role string

const (
	RoleDriver            Role = "Driver"
	RoleEngineer          Role = "Engineer"
	RoleMechanic          Role = "Mechanic"
	RoleStrategist        Role = "Strategist"
	RoleTeamPrincipal     Role = "Team Principal"
	RoleTechnicalDirector Role = "Technical Director"
	RolePitCrew           Role = "Pit Crew"
)

// RoleProfile describes how a role is presented: which attributes apply to it
// and which are highlighted on member cards.
type RoleProfile struct {
	Role          Role
	Description   string
	Attributes    []Attribute
	KeyAttributes []Attribute
}

// Roles holds the profile of every known role in canonical order.
var Roles = []RoleProfile{
	{
		Role:          RoleDriver,
		Description:   "Race the car and execute strategy on track",
		Attributes:    AllAttributes,
		KeyAttributes: []Attribute{AttrAggression},
	},
	{
		Role:          RoleEngineer,
		Description:   "Design and optimize car performance",
		Attributes:    AllAttributes,
		KeyAttributes: []Attribute{AttrTechnical},
	},
	{
		Role:          RoleMechanic,
		Description:   "Maintain and repair the race car",
		Attributes:    AllAttributes,
		KeyAttributes: []Attribute{AttrTechnical},
	},
	{
		Role:          RoleStrategist,
		Description:   "Plan race strategy and tactics",
		Attributes:    AllAttributes,
		KeyAttributes: []Attribute{AttrStrategy},
	},
	{
		Role:          RoleTeamPrincipal,
		Description:   "Lead the entire team and make key decisions",
		Attributes:    AllAttributes,
		KeyAttributes: []Attribute{AttrLeadership},
	},
	{
		Role:          RoleTechnicalDirector,
		Description:   "Oversee all technical aspects of the car",
		Attributes:    AllAttributes,
		KeyAttributes: []Attribute{AttrTechnical, AttrLeadership},
	},
	{
		Role:          RolePitCrew,
		Description:   "Execute fast pit stops during races",
		Attributes:    AllAttributes,
		KeyAttributes: []Attribute{AttrFitness},
	},
}

// ProfileFor returns the profile for role. Unknown roles get a profile with
// every attribute and no highlights, and ok is false.
func ProfileFor(role Role) (profile RoleProfile, ok bool) {
	for _, p := range Roles {
		if p.Role == role {
			return p, true
		}
	}
	return RoleProfile{Role: role, Attributes: AllAttributes}, false
}

func IsRole(role Role) bool {
	_, ok := ProfileFor(role)
	return ok
}

// Slug is the CSS-friendly form of the role name, e.g. "team-principal".
func (r Role) Slug() string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(r))), " ", "-")
	if slug == "" {
		return "default"
	}
	return slug
}
