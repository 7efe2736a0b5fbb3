package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/store"
)

func (s *Server) handleListCars(w http.ResponseWriter, r *http.Request) {
	order := store.ParseOrder(r.URL.Query().Get("order"))

	cars, err := s.cars.List(r.Context(), store.ListOptions{Order: order})
	if err != nil {
		s.failPage(w, r, err, "Car", "/cars", "Back to the garage")
		return
	}

	s.renderPage(w, http.StatusOK, map[string]any{
		"Title":     "Cars",
		"ActiveNav": "cars",
		"Cars":      cars,
		"Order":     string(order),
	}, "pages/cars.html", "partials/car_card.html")
}

func (s *Server) handleNewCar(w http.ResponseWriter, r *http.Request) {
	s.renderCarForm(w, http.StatusOK, &domain.Car{}, nil)
}

func (s *Server) handleCreateCar(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		s.renderError(w, http.StatusBadRequest, "The form could not be read.", "/cars/new", "Try again")
		return
	}

	car, fe := carFromForm(r)
	var created *domain.Car
	var err error
	if len(fe) > 0 {
		err = fe.merge(domain.ValidateCar(car))
	} else {
		created, err = s.cars.Create(r.Context(), car)
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.renderCarForm(w, http.StatusBadRequest, car, verr)
		return
	}
	if err != nil {
		s.failPage(w, r, err, "Car", "/cars", "Back to the garage")
		return
	}

	http.Redirect(w, r, "/cars/"+created.ID, http.StatusSeeOther)
}

func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	car, err := s.cars.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.failPage(w, r, err, "Car", "/cars", "Back to the garage")
		return
	}

	s.renderPage(w, http.StatusOK, map[string]any{
		"Title":     car.Name,
		"ActiveNav": "cars",
		"Car":       car,
	}, "pages/car_detail.html")
}

func (s *Server) handleEditCar(w http.ResponseWriter, r *http.Request) {
	car, err := s.cars.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.failPage(w, r, err, "Car", "/cars", "Back to the garage")
		return
	}
	s.renderCarForm(w, http.StatusOK, car, nil)
}

func (s *Server) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := parseForm(w, r); err != nil {
		s.renderError(w, http.StatusBadRequest, "The form could not be read.", "/cars/"+id+"/edit", "Try again")
		return
	}

	car, fe := carFromForm(r)
	car.ID = id

	var err error
	if len(fe) > 0 {
		err = fe.merge(domain.ValidateCar(car))
	} else {
		_, err = s.cars.Update(r.Context(), car)
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.renderCarForm(w, http.StatusBadRequest, car, verr)
		return
	}
	if err != nil {
		s.failPage(w, r, err, "Car", "/cars", "Back to the garage")
		return
	}

	http.Redirect(w, r, "/cars/"+id, http.StatusSeeOther)
}

// handleDeleteCar serves both the HTMX DELETE and the plain form POST.
func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	if err := s.cars.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.failDelete(w, r, err, "Car", "/cars", "Back to the garage")
		return
	}
	redirectAfterDelete(w, r, "/cars")
}

func (s *Server) renderCarForm(w http.ResponseWriter, status int, car *domain.Car, verr *domain.ValidationError) {
	title := "New car"
	action := "/cars"
	if car.ID != "" {
		title = "Edit " + car.Name
		action = "/cars/" + car.ID
	}

	s.renderPage(w, status, map[string]any{
		"Title":     title,
		"ActiveNav": "cars",
		"Car":       car,
		"Action":    action,
		"Errors":    verr,
	}, "pages/car_form.html")
}
