package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/store"
)

func TestMemberServiceCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.members.Create(ctx, validMember("Charles", domain.RoleDriver))
	require.NoError(t, err)

	got, err := env.members.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Charles", got.Name)
	assert.Equal(t, domain.RoleDriver, got.Role)
	assert.Equal(t, "Monaco", got.Nationality)
	assert.Equal(t, 26, got.Age)
	assert.Equal(t, "Scuderia driver.", got.Bio)
}

func TestMemberServiceCreate_RejectsMissingFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := map[string]func(m *domain.TeamMember){
		"name":        func(m *domain.TeamMember) { m.Name = "" },
		"role":        func(m *domain.TeamMember) { m.Role = "" },
		"nationality": func(m *domain.TeamMember) { m.Nationality = " " },
		"bio":         func(m *domain.TeamMember) { m.Bio = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			m := validMember("Charles", domain.RoleDriver)
			mutate(m)

			_, err := env.members.Create(ctx, m)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "is required", verr.Field(field))
		})
	}

	for _, age := range []int{0, 15, 81} {
		m := validMember("Charles", domain.RoleDriver)
		m.Age = age
		_, err := env.members.Create(ctx, m)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, "age %d", age)
		assert.NotEmpty(t, verr.Field("age"))
	}

	n, err := env.members.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMemberServiceGet_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.members.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemberServiceUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m, err := env.members.Create(ctx, validMember("Charles", domain.RoleDriver))
	require.NoError(t, err)

	m.Role = domain.RoleStrategist
	m.Attributes = domain.Attributes{domain.AttrStrategy: 7}
	updated, err := env.members.Update(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStrategist, updated.Role)
	assert.Equal(t, domain.Attributes{domain.AttrStrategy: 7}, updated.Attributes)
}

func TestMemberServiceListByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.members.Create(ctx, validMember("Charles", domain.RoleDriver))
	require.NoError(t, err)
	_, err = env.members.Create(ctx, validMember("Xavi", domain.RoleEngineer))
	require.NoError(t, err)

	drivers, err := env.members.List(ctx, store.ListOptions{Role: string(domain.RoleDriver)})
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, "Charles", drivers[0].Name)
}

func TestMemberServicePortrait(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m, err := env.members.Create(ctx, validMember("Charles", domain.RoleDriver))
	require.NoError(t, err)

	_, _, err = env.members.Portrait(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, env.members.SetPortrait(ctx, m.ID, []byte("first"), "image/png"))
	require.NoError(t, env.members.SetPortrait(ctx, m.ID, []byte("second"), "image/png"))
	assert.Len(t, env.portraits.saved, 1, "replaced portrait file is removed")

	rc, mimeType, err := env.members.Portrait(ctx, m.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, "image/png", mimeType)
}

func TestMemberServiceSetPortrait_SaveFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m, err := env.members.Create(ctx, validMember("Charles", domain.RoleDriver))
	require.NoError(t, err)

	env.portraits.saveErr = errStub
	err = env.members.SetPortrait(ctx, m.ID, []byte("x"), "image/png")
	assert.ErrorIs(t, err, errStub)

	got, err := env.members.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, got.HasPortrait())
}

func TestMemberServiceSetPortrait_UnknownMember(t *testing.T) {
	env := newTestEnv(t)

	err := env.members.SetPortrait(context.Background(), "missing", []byte("x"), "image/png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.portraits.saved)
}

func TestMemberServiceDeleteRemovesPortrait(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m, err := env.members.Create(ctx, validMember("Charles", domain.RoleDriver))
	require.NoError(t, err)
	require.NoError(t, env.members.SetPortrait(ctx, m.ID, []byte("img"), "image/jpeg"))

	require.NoError(t, env.members.Delete(ctx, m.ID))
	assert.Empty(t, env.portraits.saved)

	_, err = env.members.Get(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, env.members.Delete(ctx, m.ID), domain.ErrNotFound)
}
