package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/okubo/chobo/internal/ledger"
	"github.com/okubo/chobo/internal/store"
)

type Server struct {
	store   *store.Store
	service *ledger.Service
	router  chi.Router
	log     *logrus.Logger
	addr    string
}

func New(st *store.Store, svc *ledger.Service, addr string, log *logrus.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{store: st, service: svc, router: r, log: log, addr: addr}
	r.Use(s.requestLog)

	r.Route("/api/v1", func(r chi.Router) {
		// Journal
		r.Post("/journal", s.createJournal)
		r.Post("/journal/single", s.createSinglePosting)
		r.Patch("/journal/{id}", s.updateJournal)
		r.Get("/journal/{id}", s.getJournal)

		// Read-side projections
		r.Get("/ledger/{account}", s.projectLedger)
		r.Post("/breakdown", s.aggregateBreakdown)

		// Reference data
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{code}", s.getAccount)
		r.Get("/fiscal-years", s.listFiscalYears)
	})

	return s
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Info("request")
	})
}

func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.addr).Info("chobo server listening")
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.WithField("addr", ln.Addr().String()).Info("chobo server listening")
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
