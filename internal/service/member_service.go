package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/photostore"
	"github.com/vbonduro/boxbox/internal/store"
)

// memberRepository is the subset of store.MemberStore that MemberService requires.
type memberRepository interface {
	Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	List(ctx context.Context, opts store.ListOptions) ([]*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
	SetPortrait(ctx context.Context, id, key string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type MemberService struct {
	members   memberRepository
	portraits photostore.PhotoStore
	logger    *slog.Logger
}

func NewMemberService(members memberRepository, portraits photostore.PhotoStore, logger *slog.Logger) *MemberService {
	return &MemberService{members: members, portraits: portraits, logger: logger}
}

func (s *MemberService) Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	const op = "service.MemberService.Create"
	log := s.logger.With(slog.String("op", op))

	normalizeMember(m)
	if err := domain.ValidateMember(m); err != nil {
		return nil, err
	}

	created, err := s.members.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	log.Info("team member created",
		slog.String("id", created.ID),
		slog.String("name", created.Name),
		slog.String("role", string(created.Role)),
	)
	return created, nil
}

// Get returns the member with id, or an error wrapping domain.ErrNotFound.
func (s *MemberService) Get(ctx context.Context, id string) (*domain.TeamMember, error) {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("team member %s: %w", id, domain.ErrNotFound)
	}
	return m, nil
}

func (s *MemberService) List(ctx context.Context, opts store.ListOptions) ([]*domain.TeamMember, error) {
	return s.members.List(ctx, opts)
}

func (s *MemberService) Update(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	const op = "service.MemberService.Update"
	log := s.logger.With(slog.String("op", op))

	normalizeMember(m)
	if err := domain.ValidateMember(m); err != nil {
		return nil, err
	}

	if err := s.members.Update(ctx, m); err != nil {
		return nil, err
	}

	log.Info("team member updated", slog.String("id", m.ID))
	return s.Get(ctx, m.ID)
}

// Delete removes the member and, best effort, its portrait file.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	const op = "service.MemberService.Delete"
	log := s.logger.With(slog.String("op", op), slog.String("id", id))

	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}

	if m.HasPortrait() {
		s.removePortrait(ctx, log, *m.PortraitKey)
	}

	log.Info("team member deleted")
	return nil
}

func (s *MemberService) Count(ctx context.Context) (int, error) {
	return s.members.Count(ctx)
}

// SetPortrait stores data as the member's portrait, replacing any previous one.
func (s *MemberService) SetPortrait(ctx context.Context, id string, data []byte, mimeType string) error {
	const op = "service.MemberService.SetPortrait"
	log := s.logger.With(slog.String("op", op), slog.String("id", id))

	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	key, err := s.portraits.Save(ctx, "member_"+id, mimeType, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to save portrait: %w", err)
	}

	if err := s.members.SetPortrait(ctx, id, key); err != nil {
		s.removePortrait(ctx, log, key)
		return err
	}

	if m.HasPortrait() {
		s.removePortrait(ctx, log, *m.PortraitKey)
	}

	log.Info("portrait stored", slog.String("storage_key", key), slog.Int("bytes", len(data)))
	return nil
}

// Portrait opens the member's portrait. It returns an error wrapping
// domain.ErrNotFound when the member or the portrait does not exist.
func (s *MemberService) Portrait(ctx context.Context, id string) (io.ReadCloser, string, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !m.HasPortrait() {
		return nil, "", fmt.Errorf("portrait for %s: %w", id, domain.ErrNotFound)
	}

	rc, mimeType, err := s.portraits.Get(ctx, *m.PortraitKey)
	if errors.Is(err, photostore.ErrNotFound) {
		return nil, "", fmt.Errorf("portrait for %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open portrait: %w", err)
	}
	return rc, mimeType, nil
}

func (s *MemberService) removePortrait(ctx context.Context, log *slog.Logger, key string) {
	if err := s.portraits.Delete(ctx, key); err != nil && !errors.Is(err, photostore.ErrNotFound) {
		log.Error("failed to delete portrait file", slog.String("storage_key", key), slog.Any("error", err))
	}
}

func normalizeMember(m *domain.TeamMember) {
	m.Name = strings.TrimSpace(m.Name)
	m.Role = domain.Role(strings.TrimSpace(string(m.Role)))
	m.Nationality = strings.TrimSpace(m.Nationality)
	m.Bio = strings.TrimSpace(m.Bio)
	if m.Attributes == nil {
		m.Attributes = domain.Attributes{}
	}
}
