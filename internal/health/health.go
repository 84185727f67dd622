package health

import (
	"fmt"
	"net/http"
	"time"
)

// Namer reports the display name of the connected bot.
type Namer interface {
	Name() string
}

// Handler serves the liveness page polled by uptime monitors.
type Handler struct {
	identity Namer
}

func NewHandler(identity Namer) *Handler {
	return &Handler{identity: identity}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := "None"
	if h.identity != nil {
		name = h.identity.Name()
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Bot %s is working", name)
}

// NewServer wires the handler into an http.Server listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       15 * time.Second,
	}
}
