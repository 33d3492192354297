package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/eventscope/pkg/domain"
	"github.com/umputun/eventscope/pkg/repository"
)

// listSourcesHandler lists the caller's own and global sources, or every source without X-User-ID
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	sources, err := s.sources.ListSources(r.Context(), userID)
	if err != nil {
		lgr.Printf("[ERROR] failed to list sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	views := make([]sourceView, 0, len(sources))
	for i := range sources {
		views = append(views, newSourceView(&sources[i]))
	}
	renderJSON(w, r, http.StatusOK, views)
}

// createSourceHandler registers a new active source owned by the caller
func (s *Server) createSourceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if userID == 0 {
		renderError(w, r, fmt.Errorf("%s header is required", userHeader), http.StatusUnauthorized)
		return
	}

	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if err := validateSourceURL(req.URL); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	cat := domain.Category(req.DefaultCategory)
	if cat != "" && !cat.Valid() {
		renderError(w, r, fmt.Errorf("unknown category %q", req.DefaultCategory), http.StatusBadRequest)
		return
	}

	src := &domain.Source{
		URL:             strings.TrimSpace(req.URL),
		Name:            strings.TrimSpace(req.Name),
		UserID:          userID,
		IsGlobal:        req.IsGlobal,
		IsActive:        true,
		DefaultCategory: cat,
		DefaultCity:     strings.TrimSpace(req.DefaultCity),
	}
	if err := s.sources.CreateSource(r.Context(), src); err != nil {
		lgr.Printf("[ERROR] failed to create source %s: %v", src.URL, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lgr.Printf("[INFO] source %d created by user %d: %s", src.ID, userID, src.URL)

	// reload to get defaults filled by the store
	if created, err := s.sources.GetSource(r.Context(), src.ID); err == nil {
		src = created
	}
	renderJSON(w, r, http.StatusCreated, newSourceView(src))
}

// getSourceHandler returns a single source
func (s *Server) getSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	src, err := s.sources.GetSource(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "get source")
		return
	}
	renderJSON(w, r, http.StatusOK, newSourceView(src))
}

// updateSourceHandler edits url, name and the category and city overrides of a source
func (s *Server) updateSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req sourceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	upd, err := req.toUpdate()
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.sources.UpdateSource(r.Context(), id, upd); err != nil {
		renderStoreError(w, r, err, "update source")
		return
	}
	lgr.Printf("[INFO] source %d updated", id)

	src, err := s.sources.GetSource(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "get source")
		return
	}
	renderJSON(w, r, http.StatusOK, newSourceView(src))
}

// deleteSourceHandler deletes a source
func (s *Server) deleteSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.sources.DeleteSource(r.Context(), id); err != nil {
		renderStoreError(w, r, err, "delete source")
		return
	}
	lgr.Printf("[INFO] source %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// enableSourceHandler re-enables a source, its failure counter starts over
func (s *Server) enableSourceHandler(w http.ResponseWriter, r *http.Request) {
	s.updateSourceStatus(w, r, true)
}

// disableSourceHandler disables a source
func (s *Server) disableSourceHandler(w http.ResponseWriter, r *http.Request) {
	s.updateSourceStatus(w, r, false)
}

// updateSourceStatus updates source active flag and returns the updated source
func (s *Server) updateSourceStatus(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.sources.SetSourceActive(r.Context(), id, active); err != nil {
		renderStoreError(w, r, err, "update source status")
		return
	}
	lgr.Printf("[INFO] source %d active=%v", id, active)

	src, err := s.sources.GetSource(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "get source")
		return
	}
	renderJSON(w, r, http.StatusOK, newSourceView(src))
}

// listPendingHandler lists queue entries, filtered by status and user query parameters
func (s *Server) listPendingHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PendingFilter{Status: domain.PendingStatus(strings.ToUpper(q.Get("status")))}
	switch filter.Status {
	case "", domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
	default:
		renderError(w, r, fmt.Errorf("invalid status %q", q.Get("status")), http.StatusBadRequest)
		return
	}

	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		if val := q.Get(name); val != "" {
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				renderError(w, r, fmt.Errorf("invalid %s %q", name, val), http.StatusBadRequest)
				return
			}
			*dst = n
		}
	}
	if val := q.Get("user"); val != "" {
		uid, err := strconv.ParseInt(val, 10, 64)
		if err != nil || uid <= 0 {
			renderError(w, r, fmt.Errorf("invalid user %q", val), http.StatusBadRequest)
			return
		}
		filter.UserID = uid
	}

	entries, err := s.pending.ListPending(r.Context(), filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to list pending events: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	views := make([]eventView, 0, len(entries))
	for i := range entries {
		views = append(views, newPendingView(&entries[i]))
	}
	renderJSON(w, r, http.StatusOK, views)
}

// getPendingHandler returns a single queue entry
func (s *Server) getPendingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	p, err := s.pending.GetPending(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "get pending event")
		return
	}
	renderJSON(w, r, http.StatusOK, newPendingView(p))
}

// updatePendingHandler applies moderator edits to a PENDING entry
func (s *Server) updatePendingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req pendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	upd, ok := req.toUpdate()
	if !ok {
		renderError(w, r, fmt.Errorf("unknown category %q", *req.Category), http.StatusBadRequest)
		return
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		renderError(w, r, fmt.Errorf("title can't be empty"), http.StatusBadRequest)
		return
	}

	if err := s.pending.UpdatePending(r.Context(), id, upd); err != nil {
		renderStoreError(w, r, err, "update pending event")
		return
	}

	p, err := s.pending.GetPending(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "get pending event")
		return
	}
	renderJSON(w, r, http.StatusOK, newPendingView(p))
}

// approvePendingHandler publishes a PENDING entry and returns the created event
func (s *Server) approvePendingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	ev, err := s.pending.ApprovePending(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "approve pending event")
		return
	}
	lgr.Printf("[INFO] pending event %d approved as event %d", id, ev.ID)
	renderJSON(w, r, http.StatusOK, newEventView(ev))
}

// rejectPendingHandler rejects a PENDING entry
func (s *Server) rejectPendingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.pending.RejectPending(r.Context(), id); err != nil {
		renderStoreError(w, r, err, "reject pending event")
		return
	}
	lgr.Printf("[INFO] pending event %d rejected", id)

	p, err := s.pending.GetPending(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "get pending event")
		return
	}
	renderJSON(w, r, http.StatusOK, newPendingView(p))
}

// renderStoreError maps store sentinel errors to status codes, anything else is logged as internal error
func renderStoreError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, repository.ErrNotPending):
		renderError(w, r, err, http.StatusConflict)
	default:
		lgr.Printf("[ERROR] failed to %s: %v", op, err)
		renderError(w, r, fmt.Errorf("failed to %s", op), http.StatusInternalServerError)
	}
}

// validateSourceURL accepts absolute http and https URLs only
func validateSourceURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("source URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid source URL %q", raw)
	}
	return nil
}
