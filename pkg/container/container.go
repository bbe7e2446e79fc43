package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"book-catalog-api/internal/config"
	"book-catalog-api/internal/infrastructure/database"
	"book-catalog-api/internal/infrastructure/tokenstore"
	"book-catalog-api/pkg/jwt"

	"book-catalog-api/internal/domains/author"
	authorRepo "book-catalog-api/internal/domains/author/repository"
	bookHandler "book-catalog-api/internal/domains/book/handler"
	bookRepo "book-catalog-api/internal/domains/book/repository"
	bookService "book-catalog-api/internal/domains/book/service"
	"book-catalog-api/internal/domains/genre"
	genreHandler "book-catalog-api/internal/domains/genre/handler"
	genreRepo "book-catalog-api/internal/domains/genre/repository"
	genreService "book-catalog-api/internal/domains/genre/service"
	"book-catalog-api/internal/domains/user"
	userHandler "book-catalog-api/internal/domains/user/handler"
	userRepo "book-catalog-api/internal/domains/user/repository"
	userService "book-catalog-api/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds ALL application dependencies.
// This struct is the root of the dependency graph.
type Container struct {
	// Infrastructure - shared across all domains, singleton lifecycle
	Config     *config.Config
	DB         *database.PostgresDB
	TokenStore tokenstore.Store
	JWTManager *jwt.Manager

	// Repositories - data access, stateless singletons
	UserRepo   user.Repository
	AuthorRepo author.Repository
	GenreRepo  genre.Repository
	BookRepo   bookRepo.RepositoryInterface

	// Services - business logic, stateless singletons
	UserService   user.Service
	GenreService  genre.Service
	BookService   bookService.ServiceInterface
	ImportService bookService.ImportServiceInterface

	// Handlers - thin HTTP layer delegating to services
	UserHandler   *userHandler.UserHandler
	GenreHandler  *genreHandler.GenreHandler
	BookHandler   *bookHandler.BookHandler
	ImportHandler *bookHandler.ImportHandler
}

// NewContainer builds and initializes the whole dependency graph.
//
// Initialization order matters:
// 1. Config (depends on nothing)
// 2. Infrastructure (DB, token store) - depends on Config
// 3. Repositories - depend on infrastructure
// 4. Services - depend on repositories
// 5. Handlers - depend on services
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE TOKEN STORE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	store := tokenstore.NewRedisStore(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// A Redis outage degrades refresh only; access tokens keep working
	if err := store.Ping(context.Background()); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.TokenStore = store

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// ========================================
	// STEP 4: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")

	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 5: SEED GENRE VOCABULARY
	// ========================================
	// Idempotent upsert of the closed vocabulary; safe on every boot
	log.Println("🌱 Seeding genre vocabulary...")

	if err := c.GenreRepo.Seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed genres: %w", err)
	}
	log.Println("✅ Genres seeded")

	// ========================================
	// STEP 6: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")

	c.initServices()
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 7: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")

	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// initRepositories wires the data access layer onto the shared pool
func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.GenreRepo = genreRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
}

// initServices wires the business logic layer
func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.TokenStore,
	)

	c.GenreService = genreService.NewGenreService(c.GenreRepo)

	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.AuthorRepo,
	)

	// Import rides on the book service so every row goes through the
	// same parse/resolve/persist path as a single create
	c.ImportService = bookService.NewImportService(c.BookService)
}

// initHandlers wires the HTTP layer
func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ImportHandler = bookHandler.NewImportHandler(c.ImportService)
}

// Cleanup releases resources on shutdown.
// Called from the server's graceful shutdown path.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	log.Println("✅ Container cleanup completed")
}
