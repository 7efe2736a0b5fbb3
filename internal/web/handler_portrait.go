package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/photostore"
)

// multipartOverhead is the allowance for form fields and boundaries on top of
// the image itself.
const multipartOverhead = 1 << 20

// allowedImageTypes is the set of MIME types accepted for uploaded portraits.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the stdlib sniffer has no
// WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

var errPortraitTooLarge = errors.New("portrait is larger than 10 MB")

// readPortrait pulls the "portrait" file out of a multipart request.
func readPortrait(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, photostore.MaxPortraitBytes+multipartOverhead)
	if err := r.ParseMultipartForm(photostore.MaxPortraitBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, errPortraitTooLarge
		}
		return nil, errors.New("choose an image to upload")
	}

	file, _, err := r.FormFile("portrait")
	if err != nil {
		return nil, errors.New("choose an image to upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, photostore.MaxPortraitBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > photostore.MaxPortraitBytes {
		return nil, errPortraitTooLarge
	}
	return data, nil
}

func (s *Server) handleUploadPortrait(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.members.Get(r.Context(), id)
	if err != nil {
		s.failPage(w, r, err, "Team member", "/members", "Back to the team")
		return
	}

	data, err := readPortrait(w, r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errPortraitTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.renderMemberDetail(w, status, m, err.Error())
		return
	}

	mimeType, ok := allowedImageMIME(data)
	if !ok {
		s.renderMemberDetail(w, http.StatusBadRequest, m, "Portraits must be JPEG, PNG, GIF or WebP images.")
		return
	}

	if err := s.members.SetPortrait(r.Context(), id, data, mimeType); err != nil {
		s.failPage(w, r, err, "Team member", "/members", "Back to the team")
		return
	}

	http.Redirect(w, r, "/members/"+id, http.StatusSeeOther)
}

func (s *Server) handleGetPortrait(w http.ResponseWriter, r *http.Request) {
	rc, mimeType, err := s.members.Portrait(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("get portrait failed", "path", r.URL.Path, "request_id", requestID(r), "error", err)
		http.Error(w, "failed to load portrait", http.StatusInternalServerError)
		return
	}
	defer closeWithLog(rc, "portrait", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("stream portrait failed", "path", r.URL.Path, "error", err)
	}
}
