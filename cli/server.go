// Single-process HTTP front-end.
//
// Information Hiding:
// - Route layout and static client embedding
// - Streaming via http.Flusher
// - Serialization of inquiries against the shared conversation

package cli

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

//go:embed index.html
var indexHTML []byte

// httpConversation is the single process-wide conversation the HTTP
// front-end serves.
const httpConversation = "http"

// server handles the HTTP routes over a shared runner. Inquiries against the
// single conversation are serialized by mu.
type server struct {
	runner *Runner
	mu     sync.Mutex
}

// NewServer builds the HTTP handler: GET /health, the static client at /
// and /index.html, and the streaming GET /chat endpoint.
func NewServer(runner *Runner) http.Handler {
	s := &server{runner: runner}

	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "OK")
	})
	router.Get("/", s.index)
	router.Get("/index.html", s.index)
	router.Get("/chat", s.chat)
	return router
}

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// chat answers GET /chat?<urlencoded inquiry> as streamed text/plain. The
// raw query string is the inquiry; /reset and /review ride in-band.
func (s *server) chat(w http.ResponseWriter, r *http.Request) {
	inquiry, err := url.QueryUnescape(r.URL.RawQuery)
	if err != nil {
		inquiry = r.URL.RawQuery
	}
	inquiry = strings.TrimSpace(inquiry)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch inquiry {
	case "/reset":
		s.runner.Reset(r.Context(), httpConversation)
		io.WriteString(w, "History cleared.")
		return
	case "/review":
		io.WriteString(w, s.runner.Review(httpConversation))
		return
	}

	flusher, _ := w.(http.Flusher)
	_, err = s.runner.Ask(r.Context(), httpConversation, inquiry, func(delta string) {
		io.WriteString(w, delta)
		if flusher != nil {
			flusher.Flush()
		}
	})
	if err != nil {
		// Streamed deltas may already have sent the headers, so the failure
		// is reported at the end of the body rather than as a status code.
		fmt.Fprintf(w, "\nError: %v", err)
	}
}

// Serve runs the HTTP front-end until the context is cancelled.
func Serve(ctx context.Context, runner *Runner, port string) error {
	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: NewServer(runner),
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	fmt.Printf("Listening on http://localhost:%s\n", port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
