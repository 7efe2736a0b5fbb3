package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/boxbox/internal/domain"
)

func newMemberStore(t *testing.T) *MemberStore {
	s := NewMemberStore(openTestDB(t))
	s.now = stepClock()
	return s
}

func sampleMember(name string, role domain.Role) *domain.TeamMember {
	return &domain.TeamMember{
		Name:        name,
		Role:        role,
		Nationality: "Netherlands",
		Age:         27,
		Bio:         "Four-time champion.",
		Attributes:  domain.Attributes{domain.AttrSkill: 10, domain.AttrAggression: 9},
	}
}

func TestMemberStoreCreate(t *testing.T) {
	s := newMemberStore(t)

	m, err := s.Create(context.Background(), sampleMember("Max", domain.RoleDriver))
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, domain.RoleDriver, m.Role)
	assert.Equal(t, 27, m.Age)
	assert.Equal(t, domain.Attributes{domain.AttrSkill: 10, domain.AttrAggression: 9}, m.Attributes)
	assert.False(t, m.HasPortrait())
}

func TestMemberStoreCreate_NilAttributes(t *testing.T) {
	s := newMemberStore(t)

	in := sampleMember("Toto", domain.RoleTeamPrincipal)
	in.Attributes = nil
	m, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, m.Attributes)
}

func TestMemberStoreGetByID_NotFound(t *testing.T) {
	s := newMemberStore(t)

	got, err := s.GetByID(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemberStoreListFilterAndOrder(t *testing.T) {
	s := newMemberStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, sampleMember("Max", domain.RoleDriver))
	require.NoError(t, err)
	_, err = s.Create(ctx, sampleMember("GP", domain.RoleEngineer))
	require.NoError(t, err)
	_, err = s.Create(ctx, sampleMember("Checo", domain.RoleDriver))
	require.NoError(t, err)

	all, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Checo", all[0].Name)

	drivers, err := s.List(ctx, ListOptions{Role: string(domain.RoleDriver), Order: OrderOldest})
	require.NoError(t, err)
	require.Len(t, drivers, 2)
	assert.Equal(t, "Max", drivers[0].Name)
	assert.Equal(t, "Checo", drivers[1].Name)

	none, err := s.List(ctx, ListOptions{Role: string(domain.RoleStrategist)})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemberStoreListSearch(t *testing.T) {
	s := newMemberStore(t)
	ctx := context.Background()

	for _, m := range []*domain.TeamMember{
		sampleMember("Max Verstappen", domain.RoleDriver),
		sampleMember("Sergio Perez", domain.RoleDriver),
		sampleMember("Gianpiero Lambiase", domain.RoleEngineer),
		sampleMember("Jos 100% Verstappen", domain.RoleMechanic),
	} {
		_, err := s.Create(ctx, m)
		require.NoError(t, err)
	}

	got, err := s.List(ctx, ListOptions{Query: "verstappen", Order: OrderOldest})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Max Verstappen", got[0].Name)
	assert.Equal(t, "Jos 100% Verstappen", got[1].Name)

	got, err = s.List(ctx, ListOptions{Query: "  VERSTAPPEN ", Role: string(domain.RoleDriver)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Max Verstappen", got[0].Name)
}

func TestMemberStoreListSearch_Wildcards(t *testing.T) {
	s := newMemberStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, sampleMember("Jos 100% Verstappen", domain.RoleMechanic))
	require.NoError(t, err)
	_, err = s.Create(ctx, sampleMember("Max_Fan", domain.RoleMechanic))
	require.NoError(t, err)
	_, err = s.Create(ctx, sampleMember("Maxi", domain.RoleMechanic))
	require.NoError(t, err)

	got, err := s.List(ctx, ListOptions{Query: "%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jos 100% Verstappen", got[0].Name)

	got, err = s.List(ctx, ListOptions{Query: "max_"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Max_Fan", got[0].Name)
}

func TestMemberStoreListSearch_NoMatch(t *testing.T) {
	s := newMemberStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, sampleMember("Max Verstappen", domain.RoleDriver))
	require.NoError(t, err)

	got, err := s.List(ctx, ListOptions{Query: "hamilton"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemberStoreUpdate(t *testing.T) {
	s := newMemberStore(t)
	ctx := context.Background()

	m, err := s.Create(ctx, sampleMember("Max", domain.RoleDriver))
	require.NoError(t, err)

	m.Age = 28
	m.Attributes[domain.AttrFocus] = 8
	require.NoError(t, s.Update(ctx, m))

	got, err := s.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 28, got.Age)
	v, ok := got.Attributes.Get(domain.AttrFocus)
	assert.True(t, ok)
	assert.Equal(t, 8, v)
}

func TestMemberStoreUpdate_NotFound(t *testing.T) {
	s := newMemberStore(t)

	m := sampleMember("Ghost", domain.RoleDriver)
	m.ID = uuid.NewString()
	assert.ErrorIs(t, s.Update(context.Background(), m), domain.ErrNotFound)
}

func TestMemberStoreSetPortrait(t *testing.T) {
	s := newMemberStore(t)
	ctx := context.Background()

	m, err := s.Create(ctx, sampleMember("Max", domain.RoleDriver))
	require.NoError(t, err)

	require.NoError(t, s.SetPortrait(ctx, m.ID, "portraits/max.jpg"))
	got, err := s.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, got.HasPortrait())
	assert.Equal(t, "portraits/max.jpg", *got.PortraitKey)

	// Editing the profile keeps the portrait.
	got.Bio = "Updated."
	require.NoError(t, s.Update(ctx, got))
	got, err = s.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.HasPortrait())

	require.NoError(t, s.SetPortrait(ctx, m.ID, ""))
	got, err = s.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, got.HasPortrait())

	assert.ErrorIs(t, s.SetPortrait(ctx, uuid.NewString(), "x"), domain.ErrNotFound)
}

func TestMemberStore_MalformedID(t *testing.T) {
	s := newMemberStore(t)
	ctx := context.Background()

	got, err := s.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)

	m := sampleMember("Ghost", domain.RoleDriver)
	m.ID = "abc"
	assert.ErrorIs(t, s.Update(ctx, m), domain.ErrNotFound)
	assert.ErrorIs(t, s.SetPortrait(ctx, "abc", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "abc"), domain.ErrNotFound)
}

func TestMemberStoreDelete(t *testing.T) {
	s := newMemberStore(t)
	ctx := context.Background()

	m, err := s.Create(ctx, sampleMember("Max", domain.RoleDriver))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, m.ID))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.ErrorIs(t, s.Delete(ctx, m.ID), domain.ErrNotFound)
}
