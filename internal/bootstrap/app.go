package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/advisor"
	"mitrahire-backend/internal/authgoogle"
	"mitrahire-backend/internal/interviews"
	"mitrahire-backend/internal/llm"
	"mitrahire-backend/internal/llm/gemini"
	"mitrahire-backend/internal/projects"
	"mitrahire-backend/internal/queue"
	"mitrahire-backend/internal/resumes"
	"mitrahire-backend/internal/shared/config"
	"mitrahire-backend/internal/shared/server"
	"mitrahire-backend/internal/shared/storage/db"
	"mitrahire-backend/internal/shared/storage/object"
	localstore "mitrahire-backend/internal/shared/storage/object/local"
	s3store "mitrahire-backend/internal/shared/storage/object/s3"
	"mitrahire-backend/internal/shortlist"
	"mitrahire-backend/internal/speech"
	"mitrahire-backend/internal/users"
)

// App holds shared dependencies for the API and worker binaries.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	UsersRepo      users.Repo
	ProjectsRepo   projects.Repo
	ResumesRepo    resumes.Repo
	InterviewsRepo interviews.Repo

	UsersService      *users.Service
	ProjectsService   *projects.Service
	ResumesService    *resumes.Service
	InterviewsService *interviews.Service
	ShortlistService  *shortlist.Service
	AdvisorService    *advisor.Service

	Generator    *interviews.Generator
	SpeechClient *speech.Client
	GoogleAuth   *authgoogle.Service
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config: cfg,
		Registrars: []server.RouteRegistrar{
			app.GoogleAuth,
			users.NewHandler(app.UsersService),
			projects.NewHandler(app.ProjectsService),
			resumes.NewHandler(app.ResumesService, app.ProjectsService),
			interviews.NewHandler(app.InterviewsService, app.Generator, app.UsersService),
			shortlist.NewHandler(app.ShortlistService),
			advisor.NewHandler(app.AdvisorService),
			speech.NewHandler(app.SpeechClient),
		},
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("MH_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ProjectsRepo = &projects.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.InterviewsRepo = &interviews.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ProjectsRepo = projects.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.InterviewsRepo = interviews.NewMemoryRepo()
	}

	llmClient, err := buildLLM(app.Config)
	if err != nil {
		return err
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.ResumesService = resumes.NewService(app.ResumesRepo, app.Store)
	app.ProjectsService = projects.NewService(
		app.ProjectsRepo,
		app.ResumesService,
		intentPublisher(app.Queue),
		app.Config.UploadLinkBase,
	)

	app.Generator = interviews.NewGenerator(llmClient)
	app.InterviewsService = interviews.NewService(app.InterviewsRepo, app.Generator, app.UsersService)
	app.ShortlistService = shortlist.NewService(llmClient, app.ResumesService)
	app.AdvisorService = advisor.NewService(llmClient)

	app.SpeechClient = speech.NewClient(app.Config.SpeechEndpoint, app.Config.SpeechAPIKey, app.Config.SpeechVoiceID)
	app.GoogleAuth = authgoogle.NewService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
	return nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			log.Printf("bootstrap: GEMINI_API_KEY empty; model calls will fail until configured")
			return llm.PlaceholderClient{}, nil
		}
		client, err := gemini.New(context.Background(), apiKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return llm.WithRetry(client, ""), nil
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
