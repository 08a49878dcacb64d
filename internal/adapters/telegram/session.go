package telegram

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/platform/logger"
	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	tgauth "github.com/gotd/td/telegram/auth"
	"golang.org/x/time/rate"
)

const (
	sessionDirMode  = 0o700
	rpcInterval     = 100 * time.Millisecond
	rpcBurst        = 5
	floodWaitMaxTry = 3
)

// Options configures a Session. SelfAutomated counts the session account's own
// messages as automated replies.
type Options struct {
	APIID         int
	APIHash       string
	SessionPath   string
	ResponderIDs  []int64
	SelfAutomated bool
}

// AuthStatus describes the account behind the stored session.
type AuthStatus struct {
	Authorized bool   `json:"authorized"`
	UserID     int64  `json:"user_id,omitempty"`
	Username   string `json:"username,omitempty"`
}

// Session owns the MTProto connection and its on-disk session file.
type Session struct {
	client        *telegram.Client
	responders    []int64
	selfAutomated bool
	log           *logger.Logger
}

func NewSession(opts Options, log *logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.APIID <= 0 {
		return nil, errors.New("telegram api id is required")
	}
	if strings.TrimSpace(opts.APIHash) == "" {
		return nil, errors.New("telegram api hash is required")
	}
	if strings.TrimSpace(opts.SessionPath) == "" {
		return nil, errors.New("telegram session path is required")
	}
	if err := os.MkdirAll(filepath.Dir(opts.SessionPath), sessionDirMode); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	waiter := floodwait.NewSimpleWaiter().WithMaxRetries(floodWaitMaxTry)
	client := telegram.NewClient(opts.APIID, opts.APIHash, telegram.Options{
		Logger:         log.Zap().Named("gotd"),
		SessionStorage: &session.FileStorage{Path: opts.SessionPath},
		Middlewares: []telegram.Middleware{
			waiter,
			ratelimit.New(rate.Every(rpcInterval), rpcBurst),
		},
	})

	return &Session{
		client:        client,
		responders:    append([]int64(nil), opts.ResponderIDs...),
		selfAutomated: opts.SelfAutomated,
		log:           log.With("component", "TelegramSession"),
	}, nil
}

// Run connects, checks the stored authorization and calls fn with a chat
// client bound to the connection. An unauthorized session fails with
// domain.ErrNotAuthenticated before fn runs.
func (s *Session) Run(ctx context.Context, fn func(ctx context.Context, client *Client) error) error {
	return s.client.Run(ctx, func(ctx context.Context) error {
		status, err := s.client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("check authorization: %w", err)
		}
		if !status.Authorized {
			return domain.ErrNotAuthenticated
		}

		self, err := s.client.Self(ctx)
		if err != nil {
			return fmt.Errorf("get self: %w", err)
		}
		s.log.Debug("session authorized", "user_id", self.ID, "username", self.Username)

		return fn(ctx, newClient(s.client.API(), newSenders(self.ID, s.responders, s.selfAutomated), s.log))
	})
}

// Login performs the interactive phone code flow when the session is not yet
// authorized. password is only used for accounts with two-step verification.
func (s *Session) Login(ctx context.Context, phone string, password string, code tgauth.CodeAuthenticator) (AuthStatus, error) {
	if strings.TrimSpace(phone) == "" {
		return AuthStatus{}, errors.New("phone number is required")
	}

	var status AuthStatus
	err := s.client.Run(ctx, func(ctx context.Context) error {
		flow := tgauth.NewFlow(tgauth.Constant(phone, password, code), tgauth.SendCodeOptions{})
		if err := s.client.Auth().IfNecessary(ctx, flow); err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}

		var err error
		status, err = s.status(ctx)
		return err
	})
	if err != nil {
		return AuthStatus{}, err
	}

	s.log.Info("telegram login complete", "user_id", status.UserID)
	return status, nil
}

func (s *Session) Status(ctx context.Context) (AuthStatus, error) {
	var status AuthStatus
	err := s.client.Run(ctx, func(ctx context.Context) error {
		var err error
		status, err = s.status(ctx)
		return err
	})

	return status, err
}

func (s *Session) status(ctx context.Context) (AuthStatus, error) {
	status, err := s.client.Auth().Status(ctx)
	if err != nil {
		return AuthStatus{}, fmt.Errorf("check authorization: %w", err)
	}
	if !status.Authorized || status.User == nil {
		return AuthStatus{}, nil
	}

	return AuthStatus{Authorized: true, UserID: status.User.ID, Username: status.User.Username}, nil
}
