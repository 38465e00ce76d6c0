package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-drive-proxy/google"
	"github.com/jrsteele09/go-drive-proxy/internal/config"
	"github.com/jrsteele09/go-drive-proxy/server/loginsession"
)

type Server struct {
	env           string // Environment (e.g., "DEV", "production")
	mux           *http.ServeMux
	routes        []string
	config        config.Config
	google        *google.Client
	loginSessions loginsession.Repo
}

func New(config config.Config, googleClient *google.Client, loginSessionRepo loginsession.Repo) (*Server, error) {
	if googleClient == nil {
		return nil, fmt.Errorf("[Server New] google client is required")
	}
	if loginSessionRepo == nil {
		return nil, fmt.Errorf("[Server New] login session repo is required")
	}

	s := &Server{
		mux:           http.NewServeMux(),
		config:        config,
		google:        googleClient,
		loginSessions: loginSessionRepo,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
