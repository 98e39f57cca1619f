package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "doclearn-backend/internal/auth"
	"doclearn-backend/internal/documents"
	"doclearn-backend/internal/generation"
	"doclearn-backend/internal/llm"
	openai "doclearn-backend/internal/llm/openai"
	"doclearn-backend/internal/queue"
	"doclearn-backend/internal/quizzes"
	"doclearn-backend/internal/sessions"
	"doclearn-backend/internal/shared/config"
	"doclearn-backend/internal/shared/server"
	"doclearn-backend/internal/shared/storage/db"
	"doclearn-backend/internal/shared/storage/object"
	localstore "doclearn-backend/internal/shared/storage/object/local"
	s3store "doclearn-backend/internal/shared/storage/object/s3"
	"doclearn-backend/internal/users"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	Sessions *sessions.Service

	DocumentsRepo documents.DocumentsRepo
	QuizzesRepo   quizzes.QuizzesRepo
	UsersRepo     users.Repo

	DocumentsService  *documents.Service
	QuizzesService    *quizzes.Service
	GenerationService *generation.Service
	UsersService      *users.Service

	// Processor allows tests to substitute generation processing.
	Processor GenerationProcessor

	DocumentsHandler  *documents.Handler
	QuizHandler       *quizzes.Handler
	GenerationHandler *generation.Handler
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// GenerationProcessor runs one generation attempt for a document.
type GenerationProcessor interface {
	Generate(ctx context.Context, userID, documentID string) (generation.Result, error)
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
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

	sess, err := sessions.New(cfg.JWTSecret, cfg.Env, parseIdleTTL(cfg.SessionIdleTTL))
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Queue:    queueClient,
		Sessions: sess,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Sessions:          app.Sessions,
		DocumentHandler:   app.DocumentsHandler,
		QuizHandler:       app.QuizHandler,
		GenerationHandler: app.GenerationHandler,
		UserHandler:       app.UsersHandler,
		GoogleAuth:        app.GoogleAuth,
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
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("DL_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func parseIdleTTL(raw string) time.Duration {
	ttl, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || ttl <= 0 {
		return 30 * time.Minute
	}
	return ttl
}

func buildServices(app *App) error {
	var docRepo documents.DocumentsRepo
	var quizRepo quizzes.QuizzesRepo
	var userRepo users.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		quizRepo = &quizzes.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		quizRepo = quizzes.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	docSvc := &documents.Service{
		Store: app.Store,
		Repo:  docRepo,
	}
	quizSvc := quizzes.NewService(quizRepo)

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	genSvc := generation.NewService(docRepo, quizSvc, llmClient)

	userSvc := users.NewService(userRepo, app.Sessions)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.Sessions,
		userSvc,
	)

	app.DocumentsRepo = docRepo
	app.QuizzesRepo = quizRepo
	app.UsersRepo = userRepo
	app.DocumentsService = docSvc
	app.QuizzesService = quizSvc
	app.GenerationService = genSvc
	app.Processor = genSvc
	app.UsersService = userSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.QuizHandler = quizzes.NewHandler(quizSvc)
	app.GenerationHandler = generation.NewHandler(genSvc, app.Queue)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
