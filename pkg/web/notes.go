package web

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/aretw0/notebook/pkg/core"
)

// genericFailure is shown for any storage failure.
const genericFailure = "An error occurred!"

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) getHomePage(w http.ResponseWriter, r *http.Request) {
	if err := h.views.render(w, http.StatusOK, "home", nil); err != nil {
		h.handleError(w, r, err)
	}
}

func (h *Handler) getNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListNotes(r.Context())

	if wantsJSON(r) {
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, notes)
		return
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		h.renderNotesPage(w, r, http.StatusNotFound, formVModel{}, nil, core.UserMessage(err, core.MsgNoNotes))
	case err != nil:
		h.handleError(w, r, err)
	default:
		h.renderNotesPage(w, r, http.StatusOK, formVModel{}, notes, "")
	}
}

func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.handleError(w, r, &core.ValidationError{Field: "form", Message: "Invalid form submission."})
		return
	}

	title := r.PostForm.Get("title")
	content := r.PostForm.Get("content")

	note, err := h.service.CreateNote(r.Context(), title, content)
	if err == nil {
		h.logger.Debug("note accepted", "id", note.ID)
		// JSON clients get the same bodiless redirect to the list.
		w.Header().Set("Location", "/notes")
		w.WriteHeader(http.StatusSeeOther)
		return
	}

	if !errors.Is(err, core.ErrValidation) {
		h.handleError(w, r, err)
		return
	}

	message := core.UserMessage(err, core.MsgInvalidTitle)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, messageResponse{Message: message})
		return
	}

	// The rejection is rendered inline, next to the current notes.
	form := formVModel{Error: message, Title: title, Content: content}
	notes, listErr := h.service.ListNotes(r.Context())
	switch {
	case errors.Is(listErr, core.ErrNotFound):
		h.renderNotesPage(w, r, http.StatusOK, form, nil, core.MsgNoNotes)
	case listErr != nil:
		h.handleError(w, r, listErr)
	default:
		h.renderNotesPage(w, r, http.StatusOK, form, notes, "")
	}
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.service.GetNote(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, note)
		return
	}

	if err := h.views.render(w, http.StatusOK, "note", notePageVModel{Note: note}); err != nil {
		h.handleError(w, r, err)
	}
}

func (h *Handler) getStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	http.ServeContent(w, r, "styles.css", startedAt, bytes.NewReader(stylesheet))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.handleError(w, r, &core.NotFoundError{Message: "Page not found."})
}

func (h *Handler) renderNotesPage(w http.ResponseWriter, r *http.Request, status int, form formVModel, notes []core.Note, info string) {
	vmodel := notesPageVModel{
		Form:  form,
		Notes: core.SortNewestFirst(notes),
		Info:  info,
	}
	if err := h.views.render(w, status, "notes", vmodel); err != nil {
		h.handleError(w, r, err)
	}
}

// wantsJSON reports whether the client asked for JSON, through the Accept
// header or ?format=json.
func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	for _, accept := range r.Header.Values("Accept") {
		for _, part := range strings.Split(accept, ",") {
			mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
			if strings.EqualFold(strings.TrimSpace(mediaType), "application/json") {
				return true
			}
		}
	}
	return false
}
