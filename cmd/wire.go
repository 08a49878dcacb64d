package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	statusadapter "github.com/bnema/topicd/internal/adapters/render/status"
	"github.com/bnema/topicd/internal/adapters/repo/statefile"
	tomlrepo "github.com/bnema/topicd/internal/adapters/repo/toml"
	chainstore "github.com/bnema/topicd/internal/adapters/secrets/chain"
	"github.com/bnema/topicd/internal/adapters/telegram"
	"github.com/bnema/topicd/internal/application"
	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/platform/logger"
	"github.com/bnema/topicd/internal/ports"
	"github.com/spf13/viper"
)

const loginCodeTimeout = 5 * time.Minute

type app struct {
	config         ports.ConfigRepository
	secretStore    ports.SecretStore
	statusRenderer func([]application.ChatStatus, statusadapter.RenderOptions) (string, error)
	codeTimeout    time.Duration
	now            func() time.Time
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire config repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".config", "topicd", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		config:         repo,
		secretStore:    secretStore,
		statusRenderer: statusadapter.Render,
		codeTimeout:    loginCodeTimeout,
		now:            time.Now,
	}, nil
}

// loadConfig reads the configuration without requiring any chat. Commands that
// poll Telegram call validConfig instead.
func (a *app) loadConfig() (domain.Config, error) {
	cfg, err := a.config.Load()
	if err != nil {
		return domain.Config{}, err
	}

	return cfg, nil
}

func (a *app) validConfig() (domain.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return domain.Config{}, err
	}
	if err := errors.Join(cfg.Validate(), cfg.Telegram.Validate()); err != nil {
		return domain.Config{}, fmt.Errorf("invalid config %s:\n%w", a.config.Path(), err)
	}

	return cfg, nil
}

func (a *app) logger(cfg domain.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return log, nil
}

func (a *app) stateRepository(cfg domain.Config) (*statefile.Repository, error) {
	repo, err := statefile.NewRepository(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("wire state repository: %w", err)
	}

	return repo, nil
}

func (a *app) session(ctx context.Context, cfg domain.Config, log *logger.Logger) (*telegram.Session, error) {
	apiHash, err := a.secretStore.Get(ctx, cfg.Telegram.APIHashRef)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil, fmt.Errorf("load telegram api hash %q (run `topicd auth set --api-hash`): %w", cfg.Telegram.APIHashRef, err)
		}
		return nil, fmt.Errorf("load telegram api hash %q: %w", cfg.Telegram.APIHashRef, err)
	}

	return telegram.NewSession(telegram.Options{
		APIID:         cfg.Telegram.APIID,
		APIHash:       apiHash,
		SessionPath:   cfg.Telegram.SessionPath,
		ResponderIDs:  cfg.Telegram.ResponderIDs,
		SelfAutomated: cfg.Telegram.SelfAutomated,
	}, log)
}

// withScheduler connects to Telegram and hands fn a scheduler bound to the
// live connection and the state file.
func (a *app) withScheduler(ctx context.Context, cfg domain.Config, log *logger.Logger, fn func(ctx context.Context, scheduler *application.Scheduler) error) error {
	states, err := a.stateRepository(cfg)
	if err != nil {
		return err
	}

	session, err := a.session(ctx, cfg, log)
	if err != nil {
		return err
	}

	return session.Run(ctx, func(ctx context.Context, client *telegram.Client) error {
		return fn(ctx, application.NewScheduler(cfg, client, states, ports.SystemClock{}, log))
	})
}

func requireMonitored(cfg domain.Config, raw string) (domain.ChatID, error) {
	chatID, err := domain.ParseChatID(raw)
	if err != nil {
		return 0, err
	}
	if _, ok := cfg.Chat(chatID); !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrChatNotMonitored, chatID)
	}

	return chatID, nil
}
