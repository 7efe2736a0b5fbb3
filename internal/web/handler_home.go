package web

import (
	"net/http"

	"github.com/vbonduro/boxbox/internal/store"
)

// newestOnHome is how many cars and members the home page previews.
const newestOnHome = 3

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recent := store.ListOptions{Limit: newestOnHome}

	carCount, err := s.cars.Count(ctx)
	if err != nil {
		s.failHome(w, r, err)
		return
	}
	memberCount, err := s.members.Count(ctx)
	if err != nil {
		s.failHome(w, r, err)
		return
	}
	cars, err := s.cars.List(ctx, recent)
	if err != nil {
		s.failHome(w, r, err)
		return
	}
	members, err := s.members.List(ctx, recent)
	if err != nil {
		s.failHome(w, r, err)
		return
	}

	s.renderPage(w, http.StatusOK, map[string]any{
		"Title":       "BoxBox",
		"ActiveNav":   "home",
		"CarCount":    carCount,
		"MemberCount": memberCount,
		"Cars":        cars,
		"Members":     members,
	}, "pages/home.html", "partials/car_card.html", "partials/member_card.html")
}

// failHome points at the galleries since home itself is what failed.
func (s *Server) failHome(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("home failed", "request_id", requestID(r), "error", err)
	s.renderError(w, http.StatusInternalServerError, storageFailureMessage, "/cars", "Go to the cars")
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := s.performance.Report(r.Context())
	if err != nil {
		s.logger.Error("performance failed", "request_id", requestID(r), "error", err)
		s.renderError(w, http.StatusInternalServerError, storageFailureMessage, "/members", "Back to the team")
		return
	}

	s.renderPage(w, http.StatusOK, map[string]any{
		"Title":       "Performance",
		"ActiveNav":   "performance",
		"Performance": perf,
	}, "pages/performance.html")
}
