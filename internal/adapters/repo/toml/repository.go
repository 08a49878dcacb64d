package toml

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configType      = "toml"
	envPrefix       = "topicd"
	configDir       = ".config/topicd"
	configFile      = "config.toml"
	stateFile       = "forum_state.json"
	sessionFile     = "session.json"
	defaultHashRef  = "topicd/telegram/api_hash"
	configPathKey   = "config"
	intervalKey     = "interval"
	callDelayKey    = "call_delay"
	settleAfterKey  = "settle_after"
	historyLimitKey = "history_limit"
	statePathKey    = "state_path"
	logModeKey      = "log.mode"
	apiIDKey        = "telegram.api_id"
	apiHashRefKey   = "telegram.api_hash_ref"
	sessionPathKey  = "telegram.session_path"
)

// Repository loads the daemon configuration. Scalar settings resolve through
// viper (file, TOPICD_* environment, defaults); the chat list is decoded
// straight from the file with unknown keys rejected.
type Repository struct {
	cfg     *viper.Viper
	path    string
	homeDir string
}

var _ ports.ConfigRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	baseDir := filepath.Join(homeDir, configDir)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(configPathKey, filepath.Join(baseDir, configFile))
	cfg.SetDefault(intervalKey, domain.DefaultInterval.String())
	cfg.SetDefault(callDelayKey, domain.DefaultCallDelay.String())
	cfg.SetDefault(settleAfterKey, domain.DefaultSettleAfter.String())
	cfg.SetDefault(historyLimitKey, domain.DefaultHistoryLimit)
	cfg.SetDefault(statePathKey, filepath.Join(baseDir, stateFile))
	cfg.SetDefault(logModeKey, domain.DefaultLogMode)
	cfg.SetDefault(apiHashRefKey, defaultHashRef)
	cfg.SetDefault(sessionPathKey, filepath.Join(baseDir, sessionFile))

	path := cfg.GetString(configPathKey)
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path, err = normalizePath(path, homeDir)
	if err != nil {
		return nil, err
	}

	cfg.SetConfigFile(path)
	cfg.SetConfigType(configType)
	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Repository{cfg: cfg, path: path, homeDir: homeDir}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// Load returns the resolved configuration. A missing file yields defaults
// with no chats; callers that need chats run domain.Config.Validate.
func (r *Repository) Load() (domain.Config, error) {
	file, err := r.readSchema()
	if err != nil {
		return domain.Config{}, err
	}

	var errs []error
	duration := func(key string) time.Duration {
		raw := strings.TrimSpace(r.cfg.GetString(key))
		value, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s %q: %w", key, raw, err))
		}
		return value
	}
	path := func(key string) string {
		value, err := normalizePath(r.cfg.GetString(key), r.homeDir)
		if err != nil {
			errs = append(errs, err)
		}
		return value
	}

	cfg := domain.Config{
		Interval:     duration(intervalKey),
		CallDelay:    duration(callDelayKey),
		SettleAfter:  duration(settleAfterKey),
		HistoryLimit: r.cfg.GetInt(historyLimitKey),
		StatePath:    path(statePathKey),
		LogMode:      strings.TrimSpace(r.cfg.GetString(logModeKey)),
		Telegram: domain.TelegramConfig{
			APIID:         r.cfg.GetInt(apiIDKey),
			APIHashRef:    strings.TrimSpace(r.cfg.GetString(apiHashRefKey)),
			SessionPath:   path(sessionPathKey),
			ResponderIDs:  append([]int64(nil), file.Telegram.ResponderIDs...),
			SelfAutomated: file.Telegram.SelfAutomated,
		},
		Chats: make([]domain.MonitoredChat, 0, len(file.Chats)),
	}

	for _, chat := range file.Chats {
		cfg.Chats = append(cfg.Chats, fromChatSchema(chat))
	}

	if err := errors.Join(errs...); err != nil {
		return domain.Config{}, fmt.Errorf("load config %s: %w", r.path, err)
	}

	return cfg, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read config file: %w", err)
	}

	var file fileSchema
	decoder := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fileSchema{}, fmt.Errorf("decode config file: unknown keys:\n%s", strict.String())
		}
		return fileSchema{}, fmt.Errorf("decode config file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func fromChatSchema(chat chatSchema) domain.MonitoredChat {
	exempt := make([]domain.TopicID, 0, len(chat.ExemptTopics))
	for _, id := range chat.ExemptTopics {
		exempt = append(exempt, domain.TopicID(id))
	}

	return domain.MonitoredChat{
		ID:             domain.ChatID(chat.ID),
		Name:           strings.TrimSpace(chat.Name),
		WelcomeMessage: chat.WelcomeMessage,
		ExemptTopics:   exempt,
		GeneralTitle:   strings.TrimSpace(chat.GeneralTitle),
	}
}

// normalizePath expands a leading ~ and makes the path absolute.
func normalizePath(path string, homeDir string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	if path == "~" {
		path = homeDir
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}

	return filepath.Clean(absPath), nil
}
