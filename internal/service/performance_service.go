package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/vbonduro/boxbox/internal/briefing"
	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/scoring"
	"github.com/vbonduro/boxbox/internal/store"
)

// briefingTimeout bounds how long the performance page waits for a briefing.
const briefingTimeout = 30 * time.Second

// memberLister is the subset of store.MemberStore that PerformanceService requires.
type memberLister interface {
	List(ctx context.Context, opts store.ListOptions) ([]*domain.TeamMember, error)
}

// Performance is a scored team report with an optional briefing.
type Performance struct {
	*scoring.Report
	Briefing *briefing.Briefing `json:"briefing,omitempty"`
}

type PerformanceService struct {
	members memberLister
	briefer briefing.Briefer
	logger  *slog.Logger
}

// NewPerformanceService builds the service. briefer may be nil.
func NewPerformanceService(members memberLister, briefer briefing.Briefer, logger *slog.Logger) *PerformanceService {
	return &PerformanceService{members: members, briefer: briefer, logger: logger}
}

// Report scores the whole team. A failing briefing backend is logged and the
// report is returned without a briefing.
func (s *PerformanceService) Report(ctx context.Context) (*Performance, error) {
	const op = "service.PerformanceService.Report"
	log := s.logger.With(slog.String("op", op))

	members, err := s.members.List(ctx, store.ListOptions{Order: store.OrderOldest})
	if err != nil {
		return nil, err
	}

	perf := &Performance{Report: scoring.BuildReport(members)}
	log.Debug("team scored",
		slog.Int("team_size", perf.TeamSize),
		slog.Float64("overall", perf.Metrics.Overall),
	)

	if s.briefer == nil || perf.TeamSize == 0 {
		return perf, nil
	}

	bctx, cancel := context.WithTimeout(ctx, briefingTimeout)
	defer cancel()

	b, err := s.briefer.Brief(bctx, perf.Report)
	if err != nil {
		log.Warn("briefing unavailable", slog.Any("error", err))
		return perf, nil
	}
	perf.Briefing = b
	return perf, nil
}
