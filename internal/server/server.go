// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DG1001/code-to-music/internal/github"
	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
	"github.com/DG1001/code-to-music/internal/music"
	"github.com/DG1001/code-to-music/internal/pipeline"
)

// Generator is the slice of the pipeline the server calls.
// *pipeline.Pipeline satisfies it.
type Generator interface {
	Generate(ctx context.Context, repoURL string, opts pipeline.Options) (*models.Result, error)
	GenerateStyles(ctx context.Context, repoURL string, opts pipeline.Options) (*models.Result, error)
}

type Server struct {
	pipe Generator
}

func New(pipe Generator) *Server {
	return &Server{pipe: pipe}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return withCORS(BuildMux(s))
}

// BuildMux registers the API routes on a new ServeMux.
func BuildMux(s *Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/styles", s.handleStyles)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

type generateRequest struct {
	RepoURL string   `json:"repo_url"`
	Style   string   `json:"style"`
	Styles  []string `json:"styles"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in generateRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	repoURL := strings.TrimSpace(in.RepoURL)
	if repoURL == "" {
		http.Error(w, "repo_url is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	var (
		result *models.Result
		err    error
	)
	if len(in.Styles) > 0 {
		styles := make([]music.Style, len(in.Styles))
		for i, st := range in.Styles {
			styles[i] = music.Style(strings.TrimSpace(st))
		}
		result, err = s.pipe.GenerateStyles(r.Context(), repoURL, pipeline.Options{Styles: styles})
	} else {
		result, err = s.pipe.Generate(r.Context(), repoURL, pipeline.Options{Style: music.Style(strings.TrimSpace(in.Style))})
	}
	if err != nil {
		status := statusFor(err)
		slog.Error("generation failed", "repo", repoURL, "status", status, "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	slog.Info("generation complete", "repo", repoURL, "duration", time.Since(start).Round(time.Millisecond))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"styles":  music.Styles(),
		"default": music.DefaultStyle,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

// statusFor translates pipeline failures into response codes. Fallbacks
// swallow most model errors upstream, so anything arriving here is a
// request error, a content-source failure or a final artifact failure.
func statusFor(err error) int {
	var svcErr *llm.ServiceError
	switch {
	case errors.Is(err, github.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, github.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, github.ErrRateLimited):
		return http.StatusServiceUnavailable
	case errors.As(err, &svcErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
