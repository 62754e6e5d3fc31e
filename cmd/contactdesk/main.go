package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/contactdesk/contactdesk/internal/console"
	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
	"github.com/contactdesk/contactdesk/internal/core/service"
	"github.com/contactdesk/contactdesk/internal/infrastructure/config"
	"github.com/contactdesk/contactdesk/internal/infrastructure/db/sqlite"
	"github.com/contactdesk/contactdesk/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "contactdesk:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	dbPath := pflag.String("db", cfg.DBPath, "path to the sqlite database file")
	logLevel := pflag.String("log-level", cfg.LogLevel, "minimum log level (trace, debug, info, warn, error)")
	pretty := pflag.Bool("pretty", cfg.LogPretty, "human-friendly log output")
	pflag.Parse()

	log := logger.Init(logger.Options{Level: *logLevel, Pretty: *pretty})
	log.Info().Str("env", cfg.Env).Str("db", *dbPath).Msg("starting contactdesk")

	db, err := sqlite.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	contactRepo := sqlite.NewContactRepository(db)

	if err := bootstrapManager(ctx, userRepo, cfg.Bootstrap, log); err != nil {
		return fmt.Errorf("bootstrap manager: %w", err)
	}

	authSvc := service.NewAuthService(userRepo, log)
	contactSvc := service.NewContactService(contactRepo, log)
	userSvc := service.NewUserService(userRepo, log)

	ui := console.NewUI(os.Stdout)
	prompt := console.NewPrompter(os.Stdin, os.Stdout)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		prompt.Secret = readSecret
	}

	app := console.NewApp(authSvc, contactSvc, userSvc, ui, prompt, log)
	if err := app.Run(ctx); err != nil {
		return err
	}

	log.Info().Msg("contactdesk stopped")
	return nil
}

// bootstrapManager seeds the first Manager account so a fresh database is
// usable. It only runs when no manager exists and a bootstrap password was
// configured.
func bootstrapManager(ctx context.Context, repo ports.UserRepository, cfg config.BootstrapConfig, log zerolog.Logger) error {
	counts, err := repo.CountByRole(ctx)
	if err != nil {
		return err
	}
	if counts[domain.RoleManager] > 0 {
		return nil
	}
	if cfg.Password == "" {
		log.Warn().Msg("no manager account exists and no bootstrap password is configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	id, err := repo.Insert(ctx, &domain.Principal{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		FirstName:    cfg.FirstName,
		LastName:     cfg.LastName,
		Role:         domain.RoleManager,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	log.Info().Int64("user_id", id).Str("username", cfg.Username).Msg("bootstrap manager account created")
	return nil
}

// readSecret reads a password without echo when stdin is a terminal.
func readSecret(label string) (string, error) {
	fmt.Printf("▶ %s: ", label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
