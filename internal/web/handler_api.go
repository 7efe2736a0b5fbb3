package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/scoring"
	"github.com/vbonduro/boxbox/internal/store"
)

type carRequest struct {
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Engine   string  `json:"engine"`
	TopSpeed float64 `json:"top_speed"`
}

func (c carRequest) toCar() *domain.Car {
	return &domain.Car{Name: c.Name, Team: c.Team, Engine: c.Engine, TopSpeed: c.TopSpeed}
}

type memberRequest struct {
	Name        string            `json:"name"`
	Role        domain.Role       `json:"role"`
	Nationality string            `json:"nationality"`
	Age         int               `json:"age"`
	Bio         string            `json:"bio"`
	Attributes  domain.Attributes `json:"attributes"`
}

func (m memberRequest) toMember() *domain.TeamMember {
	return &domain.TeamMember{
		Name:        m.Name,
		Role:        m.Role,
		Nationality: m.Nationality,
		Age:         m.Age,
		Bio:         m.Bio,
		Attributes:  m.Attributes,
	}
}

type memberResponse struct {
	*domain.TeamMember
	Rating      int    `json:"rating"`
	PortraitURL string `json:"portrait_url,omitempty"`
}

func toMemberResponse(m *domain.TeamMember) memberResponse {
	resp := memberResponse{TeamMember: m, Rating: scoring.Rating(m.Attributes)}
	if m.HasPortrait() {
		resp.PortraitURL = "/members/" + m.ID + "/portrait"
	}
	return resp
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (s *Server) registerAPIRoutes(r chi.Router) {
	r.Route("/cars", func(r chi.Router) {
		r.Get("/", s.apiListCars)
		r.Post("/", s.apiCreateCar)
		r.Get("/{id}", s.apiGetCar)
		r.Put("/{id}", s.apiUpdateCar)
		r.Delete("/{id}", s.apiDeleteCar)
	})
	r.Route("/members", func(r chi.Router) {
		r.Get("/", s.apiListMembers)
		r.Post("/", s.apiCreateMember)
		r.Get("/{id}", s.apiGetMember)
		r.Put("/{id}", s.apiUpdateMember)
		r.Delete("/{id}", s.apiDeleteMember)
	})
	r.Get("/performance", s.apiPerformance)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// apiFail maps a service error onto a JSON error response.
func (s *Server) apiFail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error("api request failed", "path", r.URL.Path, "request_id", requestID(r), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// limitParam reads ?limit=, ignoring anything that is not a positive integer.
func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *Server) apiListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := s.cars.List(r.Context(), store.ListOptions{
		Order: store.ParseOrder(r.URL.Query().Get("order")),
		Limit: limitParam(r),
	})
	if err != nil {
		s.apiFail(w, r, err)
		return
	}
	if cars == nil {
		cars = []*domain.Car{}
	}
	writeJSON(w, http.StatusOK, cars)
}

func (s *Server) apiCreateCar(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	car, err := s.cars.Create(r.Context(), req.toCar())
	if err != nil {
		s.apiFail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/cars/"+car.ID)
	writeJSON(w, http.StatusCreated, car)
}

func (s *Server) apiGetCar(w http.ResponseWriter, r *http.Request) {
	car, err := s.cars.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.apiFail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (s *Server) apiUpdateCar(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	car := req.toCar()
	car.ID = chi.URLParam(r, "id")
	updated, err := s.cars.Update(r.Context(), car)
	if err != nil {
		s.apiFail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) apiDeleteCar(w http.ResponseWriter, r *http.Request) {
	if err := s.cars.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.apiFail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiListMembers(w http.ResponseWriter, r *http.Request) {
	opts := memberListOptions(r)
	opts.Limit = limitParam(r)

	members, err := s.members.List(r.Context(), opts)
	if err != nil {
		s.apiFail(w, r, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) apiCreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := s.members.Create(r.Context(), req.toMember())
	if err != nil {
		s.apiFail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/members/"+m.ID)
	writeJSON(w, http.StatusCreated, toMemberResponse(m))
}

func (s *Server) apiGetMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.members.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.apiFail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

func (s *Server) apiUpdateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m := req.toMember()
	m.ID = chi.URLParam(r, "id")
	updated, err := s.members.Update(r.Context(), m)
	if err != nil {
		s.apiFail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(updated))
}

func (s *Server) apiDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.members.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.apiFail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiPerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := s.performance.Report(r.Context())
	if err != nil {
		s.apiFail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, perf)
}
