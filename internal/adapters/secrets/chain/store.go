package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/topicd/internal/adapters/secrets/file"
	passstore "github.com/bnema/topicd/internal/adapters/secrets/pass"
	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/ports"
)

// Store tries its backends in order. Reads return the first hit, writes land
// in the first backend that accepts them, deletes reach every backend.
type Store struct {
	backends []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret store chain has no backends")

func NewStore(backends ...ports.SecretStore) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend == nil {
			return nil, fmt.Errorf("secret backend %d is nil", i)
		}
	}

	return &Store{backends: backends}, nil
}

// NewPassFirstWithFileFallback prefers pass(1) and falls back to plain files
// below fileRoot on hosts without it.
func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for _, backend := range s.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextErr(err) {
			return "", err
		}
		errs = append(errs, err)
	}

	if allMissing(errs) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextErr(err) {
			return err
		}
		errs = append(errs, err)
	}

	return fmt.Errorf("put secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Delete(ctx, key)
		if err == nil || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		if isContextErr(err) {
			return err
		}
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("delete secret %q: %w", key, errors.Join(errs...))
	}

	return nil
}

func allMissing(errs []error) bool {
	for _, err := range errs {
		if !errors.Is(err, domain.ErrSecretNotFound) && !errors.Is(err, passstore.ErrUnavailable) {
			return false
		}
	}

	return true
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
