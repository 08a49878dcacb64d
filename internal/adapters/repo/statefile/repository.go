package statefile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/ports"
)

const (
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	tempFilePattern = ".forum_state-*.json.tmp"
)

// Repository persists rotation state as one JSON object keyed by chat id.
// Writes go through a temp file and a rename so a concurrent reader sees
// either the old or the new document, never a partial one.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.StateRepository = (*Repository)(nil)

func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("state path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{path: absPath, mu: lockForPath(absPath)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Load(ctx context.Context) (domain.RotationStates, error) {
	if err := ctx.Err(); err != nil {
		return domain.RotationStates{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	document, err := r.readDocument()
	if err != nil {
		return domain.RotationStates{}, err
	}

	// A damaged record never hides the others: it is salvaged field by field
	// and reported alongside the states that decoded cleanly.
	states := make(domain.RotationStates, len(document))
	var errs []error
	for key, raw := range document {
		chatID, err := domain.ParseChatID(key)
		if err != nil {
			continue
		}

		schema, err := decodeRecord(raw)
		if err != nil {
			errs = append(errs, corrupt(fmt.Sprintf("decode state of chat %s", key), err))
		}
		states[chatID] = fromSchema(schema)
	}

	return states, errors.Join(errs...)
}

func (r *Repository) Save(ctx context.Context, states domain.RotationStates) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// A damaged previous document only loses its unknown fields.
	previous, err := r.readDocument()
	if err != nil {
		previous = map[string]json.RawMessage{}
	}

	document := make(map[string]json.RawMessage, len(states))
	for key, raw := range previous {
		if _, err := domain.ParseChatID(key); err != nil {
			document[key] = raw
		}
	}

	for chatID, state := range states {
		key := chatID.String()

		var record map[string]json.RawMessage
		if raw, ok := previous[key]; ok {
			_ = json.Unmarshal(raw, &record)
		}

		merged, err := mergeInto(record, toSchema(state))
		if err != nil {
			return fmt.Errorf("encode state of chat %s: %w", key, err)
		}
		encoded, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encode state of chat %s: %w", key, err)
		}
		document[key] = encoded
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	return writeFileAtomic(r.path, append(data, '\n'))
}

// readDocument returns an empty document for a missing or blank file.
func (r *Repository) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, corrupt("read state file", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var document map[string]json.RawMessage
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, corrupt("decode state file", err)
	}
	if document == nil {
		document = map[string]json.RawMessage{}
	}

	return document, nil
}

func corrupt(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStateCorrupt, err)
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false

	// Make the rename durable across power loss.
	if parent, err := os.Open(dir); err == nil {
		_ = parent.Sync()
		_ = parent.Close()
	}

	return nil
}
