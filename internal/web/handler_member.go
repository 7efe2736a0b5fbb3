package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/store"
)

// memberListOptions reads the gallery filters: name search, role and sort.
// Unknown roles are ignored.
func memberListOptions(r *http.Request) store.ListOptions {
	q := r.URL.Query()
	opts := store.ListOptions{
		Order: store.ParseOrder(q.Get("sort")),
		Query: strings.TrimSpace(q.Get("q")),
	}
	if role := domain.Role(q.Get("role")); domain.IsRole(role) {
		opts.Role = string(role)
	}
	return opts
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	opts := memberListOptions(r)

	members, err := s.members.List(r.Context(), opts)
	if err != nil {
		s.failPage(w, r, err, "Team member", "/members", "Back to the team")
		return
	}

	sort := "newest"
	if opts.Order == store.OrderOldest {
		sort = "oldest"
	}

	data := map[string]any{
		"Title":      "Team",
		"ActiveNav":  "members",
		"Members":    members,
		"Query":      opts.Query,
		"RoleFilter": opts.Role,
		"Sort":       sort,
	}

	// HTMX partial update: return only the results fragment. History
	// restores need the whole page.
	w.Header().Set("Vary", "HX-Request")
	if isHTMX(r) && r.Header.Get("HX-History-Restore-Request") != "true" {
		s.renderPartial(w, "member_results", data, "partials/member_results.html", "partials/member_card.html")
		return
	}

	s.renderPage(w, http.StatusOK, data, "pages/members.html", "partials/member_results.html", "partials/member_card.html")
}

func (s *Server) handleNewMember(w http.ResponseWriter, r *http.Request) {
	s.renderMemberForm(w, http.StatusOK, &domain.TeamMember{Attributes: domain.Attributes{}}, nil)
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		s.renderError(w, http.StatusBadRequest, "The form could not be read.", "/members/new", "Try again")
		return
	}

	m, fe := memberFromForm(r)
	var created *domain.TeamMember
	var err error
	if len(fe) > 0 {
		err = fe.merge(domain.ValidateMember(m))
	} else {
		created, err = s.members.Create(r.Context(), m)
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.renderMemberForm(w, http.StatusBadRequest, m, verr)
		return
	}
	if err != nil {
		s.failPage(w, r, err, "Team member", "/members", "Back to the team")
		return
	}

	http.Redirect(w, r, "/members/"+created.ID, http.StatusSeeOther)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.members.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.failPage(w, r, err, "Team member", "/members", "Back to the team")
		return
	}
	s.renderMemberDetail(w, http.StatusOK, m, "")
}

func (s *Server) handleEditMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.members.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.failPage(w, r, err, "Team member", "/members", "Back to the team")
		return
	}
	s.renderMemberForm(w, http.StatusOK, m, nil)
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := parseForm(w, r); err != nil {
		s.renderError(w, http.StatusBadRequest, "The form could not be read.", "/members/"+id+"/edit", "Try again")
		return
	}

	m, fe := memberFromForm(r)
	m.ID = id

	var err error
	if len(fe) > 0 {
		err = fe.merge(domain.ValidateMember(m))
	} else {
		_, err = s.members.Update(r.Context(), m)
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.renderMemberForm(w, http.StatusBadRequest, m, verr)
		return
	}
	if err != nil {
		s.failPage(w, r, err, "Team member", "/members", "Back to the team")
		return
	}

	http.Redirect(w, r, "/members/"+id, http.StatusSeeOther)
}

// handleDeleteMember serves both the HTMX DELETE and the plain form POST.
func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.members.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.failDelete(w, r, err, "Team member", "/members", "Back to the team")
		return
	}
	redirectAfterDelete(w, r, "/members")
}

func (s *Server) renderMemberForm(w http.ResponseWriter, status int, m *domain.TeamMember, verr *domain.ValidationError) {
	title := "New team member"
	action := "/members"
	if m.ID != "" {
		title = "Edit " + m.Name
		action = "/members/" + m.ID
	}

	s.renderPage(w, status, map[string]any{
		"Title":     title,
		"ActiveNav": "members",
		"Member":    m,
		"Action":    action,
		"Errors":    verr,
	}, "pages/member_form.html")
}

func (s *Server) renderMemberDetail(w http.ResponseWriter, status int, m *domain.TeamMember, uploadError string) {
	s.renderPage(w, status, map[string]any{
		"Title":       m.Name,
		"ActiveNav":   "members",
		"Member":      m,
		"UploadError": uploadError,
	}, "pages/member_detail.html")
}
