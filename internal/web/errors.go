package web

import (
	"errors"
	"net/http"

	"github.com/vbonduro/boxbox/internal/domain"
)

const storageFailureMessage = "Something went wrong in the garage. Your change was not saved; please try again."

// failPage renders the error page for a service failure on an HTML route:
// 404 with a link to the gallery when the record is missing, 500 otherwise.
func (s *Server) failPage(w http.ResponseWriter, r *http.Request, err error, kind, galleryHref, galleryLabel string) {
	if errors.Is(err, domain.ErrNotFound) {
		s.renderError(w, http.StatusNotFound, kind+" not found.", galleryHref, galleryLabel)
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "request_id", requestID(r), "error", err)
	s.renderError(w, http.StatusInternalServerError, storageFailureMessage, "/", "Back to the paddock")
}

// failDelete is failPage for delete routes. HTMX callers get a bare status so
// the page they are on is left alone.
func (s *Server) failDelete(w http.ResponseWriter, r *http.Request, err error, kind, galleryHref, galleryLabel string) {
	if !isHTMX(r) && r.Method != http.MethodDelete {
		s.failPage(w, r, err, kind, galleryHref, galleryLabel)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, kind+" not found", http.StatusNotFound)
		return
	}
	s.logger.Error("delete failed", "path", r.URL.Path, "request_id", requestID(r), "error", err)
	http.Error(w, "failed to delete", http.StatusInternalServerError)
}

// redirectAfterDelete sends HTMX callers an HX-Redirect and everyone else a
// See Other.
func redirectAfterDelete(w http.ResponseWriter, r *http.Request, to string) {
	if isHTMX(r) || r.Method == http.MethodDelete {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
