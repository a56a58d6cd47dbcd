// Package router es la raíz de inyección de dependencias: el pool entra
// una vez por acá y baja explícito a cada repositorio y handler; no hay
// estado global de proceso más allá del propio pool.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"wapoki-api/internal/adapters/storage/postgres"
	"wapoki-api/internal/domain/auth"
	"wapoki-api/internal/domain/crud"
	"wapoki-api/internal/domain/invoices"
	"wapoki-api/internal/middleware"
	"wapoki-api/internal/platform/metrics"
)

type Options struct {
	DB     *sqlx.DB
	Logger *zap.Logger

	// Metrics es opcional; si viene, se monta /metrics y el middleware.
	Metrics *metrics.Metrics

	// RequestTimeout acota cada request (default 30s).
	RequestTimeout time.Duration
}

func New(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middleware.RequestLogger(log))

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Repos sobre el pool compartido
	crudRepo := postgres.NewCRUDRepo(opts.DB)
	usersRepo := postgres.NewUsersRepo(opts.DB)
	invoicesRepo := postgres.NewInvoicesRepo(opts.DB)

	// Services por módulo
	crudSvc := crud.NewService(crudRepo,
		crud.WithWriteHook("usuarios", auth.PasswordHook()))
	authSvc := auth.NewService(usersRepo)
	invoicesSvc := invoices.NewService(invoicesRepo)

	r.Route("/api", func(api chi.Router) {
		crud.RegisterRoutes(api, crudSvc, log,
			// facturas entra con detalles en una transacción
			crud.WithCreateOverride("facturas", invoices.CreateHandler(invoicesSvc, log)))
		auth.RegisterRoutes(api, authSvc, crudSvc, log)
	})

	return r
}
