package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/hrops-lab/exitclear/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	authUC AuthUseCase
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", listDepartmentsHandler(uc))
			r.Post("/", createDepartmentHandler(uc))
			r.Get("/{departmentID}/questions", listQuestionsHandler(uc))
			r.Post("/{departmentID}/questions", addQuestionsHandler(uc))
			r.Get("/{departmentID}/cases", listCasesByDepartmentHandler(uc))
			r.Get("/{departmentID}/summary", departmentSummaryHandler(uc))
		})

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", listCasesHandler(uc))
			r.Post("/", createCaseHandler(uc))
			r.Get("/summary", fleetSummaryHandler(uc))
			r.Get("/{caseID}", getCaseHandler(uc))
			r.Get("/{caseID}/summary", caseSummaryHandler(uc))
			r.Get("/{caseID}/overview", caseOverviewHandler(uc))
			r.Get("/{caseID}/departments/{departmentID}/checklist", getChecklistHandler(uc))
			r.Post("/{caseID}/departments/{departmentID}/submission", submitHandler(uc))
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
