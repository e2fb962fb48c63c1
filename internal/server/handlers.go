package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/phuslu/log"

	"github.com/jonathan/leadgen/internal/export"
	"github.com/jonathan/leadgen/internal/metrics"
	"github.com/jonathan/leadgen/internal/session"
)

// RunResponse is the body returned after a completed run
type RunResponse struct {
	Session   session.Status     `json:"session"`
	Result    *session.Result    `json:"result"`
	Dashboard *metrics.Dashboard `json:"dashboard"`
}

// handleCreateSession creates a session with its own engine
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	eng, err := s.newEngine()
	if err != nil {
		s.writeError(w, err)
		return
	}

	var opts []session.Option
	if s.progressTick > 0 {
		opts = append(opts, session.WithProgressTick(s.progressTick))
	}
	sess := session.New(eng, opts...)
	id := sess.ID()
	sess.OnTransition(func(from, to session.State) {
		log.Debug().Str("session", id).Str("from", string(from)).Str("to", string(to)).Msg("session transition")
	})
	s.sessions.Add(id, &sessionEntry{session: sess, engine: eng})

	log.Info().Str("session", id).Msg("session created")
	s.jsonResponse(w, http.StatusCreated, sess.Status())
}

// handleGetSession returns the session status
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Status())
}

// handleDeleteSession drops the session and its engine
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.Remove(id) {
		s.writeError(w, &ErrSessionNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRun analyzes a company and returns the result once done
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	req, err := decodeRunRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := sess.Run(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, RunResponse{
		Session:   sess.Status(),
		Result:    result,
		Dashboard: metrics.BuildDashboard(result.Profile),
	})
}

// handleRunStream analyzes a company and streams progress via SSE
func (s *Server) handleRunStream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	req, err := decodeRunRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	req.OnProgress = func(ev session.ProgressEvent) {
		if err := sse.WriteEvent("progress", ev); err != nil {
			log.Debug().Err(err).Msg("failed to write progress event")
		}
	}

	result, err := sess.Run(r.Context(), req)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteEvent("complete", RunResponse{ //nolint:errcheck
		Session:   sess.Status(),
		Result:    result,
		Dashboard: metrics.BuildDashboard(result.Profile),
	})
}

// handleProfile returns the current profile document verbatim
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	current, err := s.current(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(current.Profile.Raw()) //nolint:errcheck
}

// handleDashboard returns every derived view of the current profile
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	current, err := s.current(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, metrics.BuildDashboard(current.Profile))
}

// handleExport downloads the current result as ?format= (json by default)
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.FormatJSON)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact, err := sess.Export(r.Context(), format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data) //nolint:errcheck
}

// contentDisposition builds an attachment header. Non-ASCII names are sent in
// the RFC 2231 extended form.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

// handleBatch is reserved for multi-company analysis
func (s *Server) handleBatch(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusNotImplemented, "Batch analysis feature coming soon!")
}

func (s *Server) lookup(r *http.Request) (*session.Session, error) {
	id := r.PathValue("id")
	entry, ok := s.sessions.Get(id)
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	return entry.session, nil
}

func (s *Server) current(r *http.Request) (*session.Result, error) {
	sess, err := s.lookup(r)
	if err != nil {
		return nil, err
	}
	current := sess.Current()
	if current == nil {
		return nil, session.ErrNoResult
	}
	return current, nil
}

// decodeRunRequest reads a RunRequest body. Omitted settings take defaults.
func decodeRunRequest(r *http.Request) (session.RunRequest, error) {
	var req session.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, &ErrBadRequest{Message: "invalid request body: " + err.Error()}
	}
	return req, nil
}
