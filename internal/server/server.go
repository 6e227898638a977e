package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/amankharwar575/kodJobs/internal/config"
	"github.com/amankharwar575/kodJobs/internal/middleware"
	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg          config.Config
	router       *mux.Router
	SessionStore *sessions.CookieStore
	log          zerolog.Logger
	emailRe      *regexp.Regexp
}

func NewServer(
	cfg config.Config,
	r *mux.Router,
	sessionStore *sessions.CookieStore,
	logger zerolog.Logger,
) Server {
	if cfg.SentryDSN != "" {
		if err := raven.SetDSN(cfg.SentryDSN); err != nil {
			logger.Error().Err(err).Msg("unable to configure sentry")
		}
	}
	svr := Server{
		cfg:          cfg,
		router:       r,
		SessionStore: sessionStore,
		log:          logger,
		emailRe:      regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$"),
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svr.JSON(w, http.StatusNotFound, map[string]string{"message": "Route not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svr.JSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
	})

	return svr
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) GetJWTSigningKey() []byte {
	return s.cfg.JwtSigningKey
}

func (s Server) Logger() zerolog.Logger {
	return s.log
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (s Server) XML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(status)
	w.Write(data)
}

// Message writes the {"message": msg} body used by every error response.
func (s Server) Message(w http.ResponseWriter, status int, msg string) {
	s.JSON(w, status, map[string]string{"message": msg})
}

func (s Server) Log(err error, msg string) {
	if s.cfg.SentryDSN != "" {
		raven.CaptureErrorAndWait(err, map[string]string{"ctx": msg})
	}
	s.log.Error().Err(err).Msg(msg)
}

// Handler returns the router wrapped in the middleware chain.
func (s Server) Handler() http.Handler {
	return middleware.HTTPSMiddleware(
		middleware.CORSMiddleware(
			middleware.GzipMiddleware(
				middleware.LoggingMiddleware(middleware.HeadersMiddleware(s.router, s.cfg.Env), s.log),
			),
			s.cfg.CORSOrigins,
		),
		s.cfg.Env,
	)
}

func (s Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		s.log.Info().Msgf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	return http.ListenAndServe(addr, s.Handler())
}

func (s Server) IsEmail(val string) bool {
	return s.emailRe.MatchString(val)
}
