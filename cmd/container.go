package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/sift/internal/ai/skillner"
	"github.com/Abraxas-365/sift/pkg/fsx"
	"github.com/Abraxas-365/sift/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/sift/pkg/iam/auth"
	"github.com/Abraxas-365/sift/pkg/iam/user/userapi"
	"github.com/Abraxas-365/sift/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/sift/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/Abraxas-365/sift/screening/profile/profileapi"
	"github.com/Abraxas-365/sift/screening/profile/profileinfra"
	"github.com/Abraxas-365/sift/screening/profile/profilesrv"
	"github.com/Abraxas-365/sift/screening/profile/worker"
	"github.com/Abraxas-365/sift/screening/recommend/recommendapi"
	"github.com/Abraxas-365/sift/screening/recommend/recommendinfra"
	"github.com/Abraxas-365/sift/screening/recommend/recommendsrv"
	"github.com/Abraxas-365/sift/screening/refdata"
)

const accessTokenTTL = 24 * time.Hour

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	S3Client   *s3.Client
	FileSystem fsx.FileSystem
	Tables     *refdata.Tables

	// Services
	TokenService     auth.TokenService
	UserService      *usersrv.Service
	ProfileService   *profilesrv.Service
	RecommendService *recommendsrv.Service
	Worker           *worker.ScreeningWorker

	// API Handlers
	UserHandlers      *userapi.UserHandlers
	ProfileHandlers   *profileapi.ProfileHandlers
	RecommendHandlers *recommendapi.RecommendHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Reference tables
	refdataDir := os.Getenv("REFDATA_DIR")
	if refdataDir == "" {
		refdataDir = "refdata"
	}
	tables, err := refdata.Load(refdataDir)
	if err != nil {
		logx.Fatalf("Failed to load reference tables from %s: %v", refdataDir, err)
	}
	c.Tables = tables
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	profileRepo := profileinfra.NewPostgresProfileRepository(c.DB)
	screeningRepo := profileinfra.NewPostgresScreeningRepository(c.DB)
	requirementRepo := recommendinfra.NewPostgresRequirementRepository(c.DB)
	taskQueue := profileinfra.NewRedisTaskQueue(c.Redis, "screening_tasks")

	// --- Auth ---
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTTokenService(jwtSecret, "sift", accessTokenTTL)
	passwordSvc := auth.NewBcryptPasswordService()

	// --- Skill recognizer ---
	// Without an API key the pipeline falls back to pure list matching.
	var recognizer skillner.Recognizer = skillner.NewNoop()
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		recognizer = skillner.NewOpenAIRecognizer(apiKey)
	} else {
		logx.Warn("OPENAI_API_KEY is not set, skill recognition uses reference tables only")
	}

	// --- Domain Services ---
	c.UserService = usersrv.NewService(userRepo, passwordSvc, c.TokenService, accessTokenTTL)
	c.ProfileService = profilesrv.NewService(
		profileRepo,
		screeningRepo,
		taskQueue,
		c.Tables,
		recognizer,
		c.FileSystem,
	)
	c.RecommendService = recommendsrv.NewService(c.Tables, requirementRepo)

	// --- Worker ---
	workers := 3
	if raw := os.Getenv("WORKER_COUNT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			workers = n
		}
	}
	c.Worker = worker.NewScreeningWorker(c.ProfileService, taskQueue, workers)

	// --- Handlers ---
	c.UserHandlers = userapi.NewUserHandlers(c.UserService)
	c.ProfileHandlers = profileapi.NewProfileHandlers(c.ProfileService, c.FileSystem)
	c.RecommendHandlers = recommendapi.NewRecommendHandlers(c.RecommendService)
}
