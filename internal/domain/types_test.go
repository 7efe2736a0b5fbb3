package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesValueAndScan(t *testing.T) {
	attrs := Attributes{AttrSkill: 9, AttrFocus: 7}

	v, err := attrs.Value()
	require.NoError(t, err)

	var decoded Attributes
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, attrs, decoded)

	require.NoError(t, decoded.Scan([]byte(`{"teamwork":4}`)))
	assert.Equal(t, Attributes{AttrTeamwork: 4}, decoded)

	require.NoError(t, decoded.Scan(nil))
	assert.Empty(t, decoded)

	assert.Error(t, decoded.Scan(42))
	assert.Error(t, decoded.Scan("not json"))
}

func TestNilAttributesValue(t *testing.T) {
	var attrs Attributes
	v, err := attrs.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestProfileFor(t *testing.T) {
	p, ok := ProfileFor(RoleTechnicalDirector)
	assert.True(t, ok)
	assert.Equal(t, []Attribute{AttrTechnical, AttrLeadership}, p.KeyAttributes)

	p, ok = ProfileFor("Caterer")
	assert.False(t, ok)
	assert.Empty(t, p.KeyAttributes)
	assert.Equal(t, AllAttributes, p.Attributes)
}

func TestRoleSlugAndAttributeLabel(t *testing.T) {
	assert.Equal(t, "team-principal", RoleTeamPrincipal.Slug())
	assert.Equal(t, "driver", RoleDriver.Slug())
	assert.Equal(t, "default", Role("").Slug())
	assert.Equal(t, "Leadership", AttrLeadership.Label())
	assert.Equal(t, "Pit-crew", Attribute("Pit-crew").Label())
	assert.Equal(t, "9lives", Attribute("9lives").Label())
	assert.Equal(t, "", Attribute("").Label())
	assert.Equal(t, "pit-crew", RolePitCrew.Slug())
	assert.Equal(t, "race-engineer", Role(" Race Engineer ").Slug())
	assert.NotEmpty(t, AttrFocus.Description())
}

func TestHasPortrait(t *testing.T) {
	m := &TeamMember{}
	assert.False(t, m.HasPortrait())

	key := "member_1.jpg"
	m.PortraitKey = &key
	assert.True(t, m.HasPortrait())
}
