package http

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagerag"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
)

// Server defaults.
const (
	DefaultAddr            = ":7860"
	DefaultRequestTimeout  = 2 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// ExampleQuestions are offered on the chat page for ExampleURL.
var ExampleQuestions = []string{
	"What is Python?",
	"What are the latest Python news?",
}

// ExampleURL is the page the example questions refer to.
const ExampleURL = "https://www.python.org"

// ChatResponse is the JSON body returned by POST /api/chat.
type ChatResponse struct {
	Answer string `json:"answer"`
	HTML   string `json:"html"`
}

// Server serves the browser chat page and its form endpoint.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address. Set before calling Open().
	Addr string

	// RequestTimeout bounds the time spent answering one question.
	RequestTimeout time.Duration

	Handler pagerag.RequestHandler
	Logger  *slog.Logger

	md goldmark.Markdown
}

// NewServer returns a Server answering requests with handler.
func NewServer(handler pagerag.RequestHandler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		Addr:           DefaultAddr,
		RequestTimeout: DefaultRequestTimeout,
		Handler:        handler,
		Logger:         logger,
		md:             goldmark.New(),
	}
	s.server = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes returns the HTTP handler for all routes.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s.logRequests(mux)
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server stopped", "error", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		ExampleURL       string
		ExampleQuestions []string
		ChunkSize        int
		ChunkOverlap     int
		Temperature      float64
	}{
		ExampleURL:       ExampleURL,
		ExampleQuestions: ExampleQuestions,
		ChunkSize:        pagerag.DefaultChunkSize,
		ChunkOverlap:     pagerag.DefaultChunkOverlap,
		Temperature:      pagerag.DefaultTemperature,
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		s.Logger.Error("render index", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req := pagerag.Request{
		Question:     r.PostForm.Get("question"),
		URL:          r.PostForm.Get("url"),
		ChunkSize:    r.PostForm.Get("chunk_size"),
		ChunkOverlap: r.PostForm.Get("chunk_overlap"),
		Temperature:  r.PostForm.Get("temperature"),
	}

	ctx := r.Context()
	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	answer := s.Handler.Handle(ctx, req)

	var html bytes.Buffer
	if err := s.md.Convert([]byte(answer), &html); err != nil {
		s.Logger.Warn("render answer", "error", err)
		html.Reset()
		html.WriteString(template.HTMLEscapeString(answer))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ChatResponse{Answer: answer, HTML: html.String()})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests tags every request with an ID and logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.Logger.Info("http request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
