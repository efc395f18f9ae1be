package cli

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/martijn/resultsapi/internal/adapter/logging"
	"github.com/martijn/resultsapi/internal/core/repository"
	"github.com/martijn/resultsapi/internal/core/service"
	"github.com/martijn/resultsapi/internal/infrastructure/redisstore"
	"github.com/martijn/resultsapi/internal/infrastructure/sqlstore"
	"github.com/martijn/resultsapi/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "resultsapi",
	Short: "Results API - scored results per user over REST",
	Long: `Results API serves the results of users over HTTP.

It provides:
- A REST resource at /api/v1/results in JSON or XML
- Owner-or-admin access control with bearer tokens
- Conditional requests with ETag, If-None-Match and If-Match
- User management from the command line`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
}

// initServices initializes all services
func initServices(ctx context.Context) (*Services, error) {
	logger, err := logging.NewZapLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database
	db, err := sqlstore.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	services := &Services{DB: db, Logger: logger}

	// Initialize repositories
	services.UserRepo = sqlstore.NewUserRepository(db)
	resultRepo := sqlstore.NewResultRepository(db)

	var authCodeRepo repository.AuthCodeRepository
	switch cfg.AuthCodeStore {
	case "redis":
		services.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := services.Redis.Ping(ctx).Err(); err != nil {
			services.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		authCodeRepo = redisstore.NewAuthCodeRepository(services.Redis)
	default:
		authCodeRepo = sqlstore.NewAuthCodeRepository(db)
	}

	// Initialize services
	services.AuthService = service.NewAuthService(services.UserRepo, authCodeRepo, cfg.JWTSecretKey, cfg.JWTAlgorithm, logger)
	services.ResultService = service.NewResultService(resultRepo, services.UserRepo, logger)

	logger.Debug("services initialized", "db_driver", cfg.DBDriver, "auth_code_store", cfg.AuthCodeStore)

	return services, nil
}

// Services holds all initialized services
type Services struct {
	DB            *sqlstore.DB
	Redis         *redis.Client
	Logger        *logging.ZapLogger
	UserRepo      repository.UserRepository
	AuthService   *service.AuthService
	ResultService *service.ResultService
}

// Close closes all resources
func (s *Services) Close() {
	if s.Redis != nil {
		s.Redis.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
	if s.Logger != nil {
		_ = s.Logger.Sync()
	}
}
