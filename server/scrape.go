package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/eventscope/pkg/domain"
)

// SSE event names of the scrape stream
const (
	sseProgress = "progress"
	sseResult   = "result"
)

// scrapeSourceHandler runs an interactive scrape and streams progress as server-sent events.
// The final "result" event carries the counts. The scrape runs to completion even if the client goes away.
func (s *Server) scrapeSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	userID, err := requestUser(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if userID == 0 {
		renderError(w, r, fmt.Errorf("%s header is required", userHeader), http.StatusUnauthorized)
		return
	}

	src, err := s.sources.GetSource(r.Context(), id)
	if err != nil {
		renderStoreError(w, r, err, "get source")
		return
	}
	if src.UserID != userID && !src.IsGlobal {
		renderError(w, r, fmt.Errorf("source %d is not accessible", id), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	stream := &sseWriter{w: w, rc: http.NewResponseController(w), clientGone: r.Context().Done()}
	stream.flush()

	lgr.Printf("[INFO] interactive scrape of source %d by user %d", src.ID, userID)
	onProgress := func(p domain.Progress) { stream.send(sseProgress, p) }
	res := s.scraper.RunInteractive(context.WithoutCancel(r.Context()), src, userID, onProgress)
	stream.send(sseResult, res)
}

// sseWriter writes server-sent events, writes after the client disconnected are dropped
type sseWriter struct {
	mu         sync.Mutex
	w          http.ResponseWriter
	rc         *http.ResponseController
	clientGone <-chan struct{}
	failed     bool
}

func (s *sseWriter) send(event string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed {
		return
	}
	select {
	case <-s.clientGone:
		s.failed = true
		lgr.Printf("[DEBUG] client disconnected, dropping %s events", event)
		return
	default:
	}

	payload, err := json.Marshal(data)
	if err != nil {
		lgr.Printf("[ERROR] can't encode %s event: %v", event, err)
		return
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		s.failed = true
		lgr.Printf("[DEBUG] failed to write %s event: %v", event, err)
		return
	}
	s.flushLocked()
}

func (s *sseWriter) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

func (s *sseWriter) flushLocked() {
	if err := s.rc.Flush(); err != nil {
		lgr.Printf("[DEBUG] can't flush event stream: %v", err)
	}
}
