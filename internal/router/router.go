package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "zoo-care-service/internal/adapters/storage/memory"
	pg "zoo-care-service/internal/adapters/storage/postgres"
	"zoo-care-service/internal/domain/animals"
	"zoo-care-service/internal/domain/behaviors"
	"zoo-care-service/internal/domain/medrecords"
	"zoo-care-service/internal/domain/tasks"
	"zoo-care-service/internal/domain/users"
	"zoo-care-service/internal/middleware"
	"zoo-care-service/internal/platform/logger"
	"zoo-care-service/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "zoo-care-service/docs" // swagger generado
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// TokenIssuer firma los tokens del login. nil => login sin token (dev).
	TokenIssuer users.TokenIssuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		animalRepo animals.Repository
		behavRepo  behaviors.Repository
		taskRepo   tasks.Repository
		userRepo   users.Repository
		medRepo    medrecords.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		animalRepo = pg.NewAnimalsRepo(db)
		behavRepo = pg.NewBehaviorsRepo(db)
		taskRepo = pg.NewTasksRepo(db)
		userRepo = pg.NewUsersRepo(db)
		medRepo = pg.NewMedicalRecordsRepo(db)
	} else {
		animalRepo = mem.NewAnimalRepo()
		behavRepo = mem.NewBehaviorRepo()
		taskRepo = mem.NewTaskRepo()
		userRepo = mem.NewUserRepo()
		medRepo = mem.NewMedRecordRepo()
	}

	// Services por módulo. Las dependencias cruzadas van por interfaces
	// chicas para no acoplar paquetes entre sí.
	usersSvc := users.NewService(userRepo, opts.TokenIssuer)
	animalsSvc := animals.NewService(animalRepo, usersSvc)
	behaviorsSvc := behaviors.NewService(behavRepo, animalsSvc, log)
	tasksSvc := tasks.NewService(taskRepo)
	medSvc := medrecords.NewService(medRepo)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	behaviors.RegisterRoutes(r, behaviorsSvc, animalsSvc)
	tasks.RegisterRoutes(r, tasksSvc)
	users.RegisterRoutes(r, usersSvc, animalsSvc)
	medrecords.RegisterRoutes(r, medSvc)

	return r
}
