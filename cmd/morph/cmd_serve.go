package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/morphdcg"
	"github.com/npillmayer/morphdcg/morph"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// Endpoints:
//
//	GET  /api/parse?word=<word>[&pos=<category>…][&simple=true]
//	POST /api/parse/text   body: {"words":["…", …], "pos":["…"], "simple":false}
//	GET  /api/categories
func newServeCmd() *cobra.Command {
	var gf grammarFlags
	var addr string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve word analysis as a JSON REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load()
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(g, timeout).handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			tracer().Infof("listening on %s", addr)
			return srv.ListenAndServe()
		},
	}
	gf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "time budget per request")

	return cmd
}

// ---- JSON response types ------------------------------------------------

type parseResponse struct {
	Word      string   `json:"word"`
	Parses    []string `json:"parses"`
	Best      string   `json:"best,omitempty"`
	Truncated bool     `json:"truncated,omitempty"`
}

type parseTextResponse struct {
	Results []parseResponse `json:"results"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- server -------------------------------------------------------------

type server struct {
	g       *morph.Grammar
	timeout time.Duration
}

func newServer(g *morph.Grammar, timeout time.Duration) *server {
	return &server{g: g, timeout: timeout}
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse/text", s.handleParseText)
	mux.HandleFunc("/api/parse", s.handleParse)
	mux.HandleFunc("/api/categories", s.handleCategories)
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		tracer().Errorf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// analyse analyses a single word within the request's time budget.
func (s *server) analyse(ctx context.Context, word string, pos []string, simple bool) (parseResponse, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	an, err := s.g.Analyze(ctx, word, pos...)
	if err != nil {
		return parseResponse{}, err
	}
	resp := parseResponse{Word: word, Parses: an.Parses, Truncated: an.Truncated}
	if simple {
		resp.Parses = s.g.SimplifyAll(an.Parses)
		if len(resp.Parses) > 0 {
			resp.Best = morph.Best(resp.Parses)
		}
	}
	return resp, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, morphdcg.ErrUnknownCategory):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	q := r.URL.Query()
	word := strings.TrimSpace(q.Get("word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
		return
	}
	simple, _ := strconv.ParseBool(q.Get("simple"))
	resp, err := s.analyse(r.Context(), word, q["pos"], simple)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	status := http.StatusOK
	if len(resp.Parses) == 0 {
		status = http.StatusNotFound
	}
	writeJSON(w, status, resp)
}

func (s *server) handleParseText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body struct {
		Words  []string `json:"words"`
		POS    []string `json:"pos"`
		Simple bool     `json:"simple"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Words) == 0 {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'words' list")
		return
	}
	out := make([]parseResponse, 0, len(body.Words))
	for _, word := range body.Words {
		resp, err := s.analyse(r.Context(), strings.TrimSpace(word), body.POS, body.Simple)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, parseTextResponse{Results: out})
}

func (s *server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: s.g.Categories()})
}
