package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vbonduro/boxbox/internal/db"
	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/photostore"
	"github.com/vbonduro/boxbox/internal/store"
)

// stubPhotoStore is a minimal in-memory photostore.PhotoStore for tests.
type stubPhotoStore struct {
	saved   map[string][]byte
	saveErr error
	n       int
}

func newStubPhotoStore() *stubPhotoStore {
	return &stubPhotoStore{saved: make(map[string][]byte)}
}

func (s *stubPhotoStore) Save(_ context.Context, prefix, mimeType string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, _ := io.ReadAll(r)
	s.n++
	key := prefix + "_" + string(rune('0'+s.n)) + photostore.Extension(mimeType)
	s.saved[key] = data
	return key, nil
}

func (s *stubPhotoStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.saved[key]
	if !ok {
		return nil, "", photostore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "image/png", nil
}

func (s *stubPhotoStore) Delete(_ context.Context, key string) error {
	if _, ok := s.saved[key]; !ok {
		return photostore.ErrNotFound
	}
	delete(s.saved, key)
	return nil
}

var errStub = errors.New("stub failure")

type testEnv struct {
	cars      *CarService
	members   *MemberService
	memberDB  *store.MemberStore
	portraits *stubPhotoStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	memberStore := store.NewMemberStore(d)
	portraits := newStubPhotoStore()
	return &testEnv{
		cars:      NewCarService(store.NewCarStore(d), slog.Default()),
		members:   NewMemberService(memberStore, portraits, slog.Default()),
		memberDB:  memberStore,
		portraits: portraits,
	}
}

func validCar() *domain.Car {
	return &domain.Car{Name: "SF-24", Team: "Ferrari", Engine: "Ferrari 066/12", TopSpeed: 345}
}

func validMember(name string, role domain.Role) *domain.TeamMember {
	return &domain.TeamMember{
		Name:        name,
		Role:        role,
		Nationality: "Monaco",
		Age:         26,
		Bio:         "Scuderia driver.",
		Attributes:  domain.Attributes{domain.AttrSkill: 9},
	}
}
