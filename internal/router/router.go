package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "pet-tracker/docs"
	mem "pet-tracker/internal/adapters/storage/memory"
	pg "pet-tracker/internal/adapters/storage/postgres"
	"pet-tracker/internal/domain/community"
	"pet-tracker/internal/domain/insights"
	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/domain/records"
	"pet-tracker/internal/domain/reminders"
	"pet-tracker/internal/domain/users"
	"pet-tracker/internal/middleware"
	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/ports/auth"
	"pet-tracker/internal/ports/photos"
	"pet-tracker/internal/ports/realtime"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultUploadRatePerMin = 20

// Repos agrupa un repositorio por módulo. Todos memoria o todos Postgres.
type Repos struct {
	Pets      pets.Repository
	Reminders reminders.Repository
	Records   records.Repository
	Users     users.Repository
	Community community.Repository
}

func MemoryRepos() Repos {
	return Repos{
		Pets:      mem.NewPetRepo(),
		Reminders: mem.NewReminderRepo(),
		Records:   mem.NewRecordRepo(),
		Users:     mem.NewUserRepo(),
		Community: mem.NewCommunityRepo(),
	}
}

func PostgresRepos(db *sql.DB) Repos {
	return Repos{
		Pets:      pg.NewPetsRepo(db),
		Reminders: pg.NewRemindersRepo(db),
		Records:   pg.NewRecordsRepo(db),
		Users:     pg.NewUsersRepo(db),
		Community: pg.NewCommunityRepo(db),
	}
}

type Services struct {
	Pets      *pets.Service
	Reminders *reminders.Service
	Records   *records.Service
	Insights  *insights.Service
	Users     *users.Service
	Community *community.Service
}

// NewServices arma los services y registra la cascada de borrado de mascotas.
func NewServices(repos Repos, hub realtime.Hub, loc *time.Location) *Services {
	petsSvc := pets.NewService(repos.Pets, hub)
	remindersSvc := reminders.NewService(repos.Reminders, petsSvc, loc)
	recordsSvc := records.NewService(repos.Records, petsSvc)

	petsSvc.OnDelete(remindersSvc, recordsSvc)

	return &Services{
		Pets:      petsSvc,
		Reminders: remindersSvc,
		Records:   recordsSvc,
		Insights:  insights.NewService(petsSvc, recordsSvc),
		Users:     users.NewService(repos.Users),
		Community: community.NewService(repos.Community, hub),
	}
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Services nil = todo in-memory (tests y modo dev).
	Services *Services

	Hub      realtime.Hub
	Uploader photos.Uploader // nil = fotos deshabilitadas
	Log      logger.Logger

	UploadRatePerMin int
}

func NewRouter(opts Options) http.Handler {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.UploadRatePerMin <= 0 {
		opts.UploadRatePerMin = defaultUploadRatePerMin
	}
	svcs := opts.Services
	if svcs == nil {
		svcs = NewServices(MemoryRepos(), opts.Hub, time.UTC)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	uploadLimit := middleware.RateLimit(opts.UploadRatePerMin, opts.UploadRatePerMin)

	// Rutas por módulo
	pets.RegisterRoutes(r, svcs.Pets, pets.RouteOptions{
		Uploader:    opts.Uploader,
		Hub:         opts.Hub,
		Log:         opts.Log,
		UploadLimit: uploadLimit,
	})
	reminders.RegisterRoutes(r, svcs.Reminders, svcs.Pets, opts.Log)
	records.RegisterRoutes(r, svcs.Records, opts.Log)
	insights.RegisterRoutes(r, svcs.Insights, opts.Log)
	users.RegisterRoutes(r, svcs.Users, users.RouteOptions{
		Uploader:    opts.Uploader,
		Log:         opts.Log,
		UploadLimit: uploadLimit,
	})
	community.RegisterRoutes(r, svcs.Community, community.RouteOptions{
		Uploader:    opts.Uploader,
		Hub:         opts.Hub,
		Log:         opts.Log,
		UploadLimit: uploadLimit,
	})

	return r
}
