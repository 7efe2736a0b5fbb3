package web

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/boxbox/internal/domain"
)

// maxFormBytes bounds non-upload form bodies.
const maxFormBytes = 1 << 20

// formErrors collects per-field problems found while decoding a form, before
// domain validation runs.
type formErrors map[string]string

// merge folds the decode problems into err, which may be nil or a
// *domain.ValidationError. Decode problems win for the same field.
func (fe formErrors) merge(err error) error {
	if len(fe) == 0 {
		return err
	}

	fields := map[string]string{}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for k, v := range verr.Fields {
			fields[k] = v
		}
	} else if err != nil {
		return err
	}
	for k, v := range fe {
		fields[k] = v
	}
	return &domain.ValidationError{Fields: fields}
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	return r.ParseForm()
}

// carFromForm reads the car fields of r into a Car.
func carFromForm(r *http.Request) (*domain.Car, formErrors) {
	fe := formErrors{}
	car := &domain.Car{
		Name:   r.PostFormValue("name"),
		Team:   r.PostFormValue("team"),
		Engine: r.PostFormValue("engine"),
	}

	if raw := strings.TrimSpace(r.PostFormValue("top_speed")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			fe["top_speed"] = "must be a number"
		} else {
			car.TopSpeed = v
		}
	}
	return car, fe
}

// memberFromForm reads the member fields of r into a TeamMember. Attribute
// inputs are named "attr_<attribute>"; blank ones are left unset.
func memberFromForm(r *http.Request) (*domain.TeamMember, formErrors) {
	fe := formErrors{}
	m := &domain.TeamMember{
		Name:        r.PostFormValue("name"),
		Role:        domain.Role(r.PostFormValue("role")),
		Nationality: r.PostFormValue("nationality"),
		Bio:         r.PostFormValue("bio"),
		Attributes:  domain.Attributes{},
	}

	if raw := strings.TrimSpace(r.PostFormValue("age")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			fe["age"] = "must be a whole number"
		} else {
			m.Age = v
		}
	}

	for _, attr := range domain.AllAttributes {
		raw := strings.TrimSpace(r.PostFormValue("attr_" + string(attr)))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			fe["attributes"] = attr.Label() + " must be a whole number"
			continue
		}
		m.Attributes[attr] = v
	}
	return m, fe
}
