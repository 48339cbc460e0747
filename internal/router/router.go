package router

import (
	"database/sql"
	"net/http"

	_ "pet-adoption/docs"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/bookings"
	"pet-adoption/internal/domain/favorites"
	"pet-adoption/internal/domain/guard"
	"pet-adoption/internal/domain/history"
	"pet-adoption/internal/domain/medicalrecords"
	"pet-adoption/internal/domain/payments"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/workflow"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger
	Metrics *metrics.Metrics

	// Opcional: nil => sin rate limiting.
	RateLimiter *middleware.RateLimiter
}

// repos agrupa los adapters de storage elegidos.
type repos struct {
	tx           workflow.TxRunner
	shelters     shelters.Repository
	pets         pets.Repository
	applications applications.Repository
	bookings     bookings.Repository
	payments     payments.Repository
	favorites    favorites.Repository
	history      history.Repository
	records      medicalrecords.Repository
}

func memoryRepos() repos {
	s := mem.NewStore()
	return repos{
		tx:           s,
		shelters:     mem.NewShelterRepo(s),
		pets:         mem.NewPetRepo(s),
		applications: mem.NewApplicationRepo(s),
		bookings:     mem.NewBookingRepo(s),
		payments:     mem.NewPaymentRepo(s),
		favorites:    mem.NewFavoriteRepo(s),
		history:      mem.NewHistoryRepo(s),
		records:      mem.NewMedicalRecordRepo(s),
	}
}

func postgresRepos(db *sql.DB) repos {
	d := pg.New(db)
	return repos{
		tx:           d,
		shelters:     pg.NewSheltersRepo(d),
		pets:         pg.NewPetsRepo(d),
		applications: pg.NewApplicationsRepo(d),
		bookings:     pg.NewBookingsRepo(d),
		payments:     pg.NewPaymentsRepo(d),
		favorites:    pg.NewFavoritesRepo(d),
		history:      pg.NewHistoryRepo(d),
		records:      pg.NewMedicalRecordsRepo(d),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(m.Instrument)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Handler)
	}
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var rp repos
	if opts.DB != nil {
		rp = postgresRepos(opts.DB)
		log.Info("storage selected", map[string]any{"driver": "postgres"})
	} else {
		rp = memoryRepos()
		log.Info("storage selected", map[string]any{"driver": "memory"})
	}

	// Services por módulo
	historySvc := history.NewService(rp.history)
	sheltersSvc := shelters.NewService(rp.shelters)
	petsSvc := pets.NewService(rp.pets, rp.tx, historySvc, sheltersSvc).
		WithObserver(m).
		WithLogger(log)
	dupGuard := guard.New(rp.applications, rp.favorites)

	applicationsSvc := applications.NewService(rp.applications, petsSvc, dupGuard, rp.tx, historySvc).
		WithObserver(m).
		WithLogger(log)
	bookingsSvc := bookings.NewService(rp.bookings, petsSvc, rp.tx, historySvc).
		WithObserver(m).
		WithLogger(log)
	paymentsSvc := payments.NewService(rp.payments, petsSvc, sheltersSvc, rp.tx, historySvc).
		WithObserver(m).
		WithLogger(log)
	favoritesSvc := favorites.NewService(rp.favorites, petsSvc, dupGuard)
	recordsSvc := medicalrecords.NewService(rp.records, petsSvc, rp.tx, historySvc).
		WithObserver(m).
		WithLogger(log)

	// Rutas por módulo
	shelters.RegisterRoutes(r, sheltersSvc)
	pets.RegisterRoutes(r, petsSvc)
	applications.RegisterRoutes(r, applicationsSvc)
	bookings.RegisterRoutes(r, bookingsSvc)
	payments.RegisterRoutes(r, paymentsSvc)
	favorites.RegisterRoutes(r, favoritesSvc)
	medicalrecords.RegisterRoutes(r, recordsSvc)
	history.RegisterRoutes(r, historySvc)

	return r
}
