package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode"

	tgauth "github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

const defaultCodeTimeout = 5 * time.Minute

var (
	ErrCodeTimeout = errors.New("timed out waiting for login code")
	ErrEmptyCode   = errors.New("login code is empty")
	ErrInvalidCode = errors.New("login code must contain only digits")
)

// CodePrompt asks for the login code Telegram sent to the account. It reads
// one line per request from In so a retried code reuses the same reader.
type CodePrompt struct {
	out     io.Writer
	timeout time.Duration

	mu     sync.Mutex
	reader *bufio.Reader
}

var _ tgauth.CodeAuthenticator = (*CodePrompt)(nil)

func NewCodePrompt(in io.Reader, out io.Writer, timeout time.Duration) *CodePrompt {
	if timeout <= 0 {
		timeout = defaultCodeTimeout
	}
	if out == nil {
		out = io.Discard
	}

	return &CodePrompt{
		out:     out,
		timeout: timeout,
		reader:  bufio.NewReader(in),
	}
}

func (p *CodePrompt) Code(ctx context.Context, sentCode *tg.AuthSentCode) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintf(p.out, "Enter the login code sent via %s: ", deliveryName(sentCode))

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type readResult struct {
		line string
		err  error
	}
	lines := make(chan readResult, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		lines <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrCodeTimeout
		}
		return "", ctx.Err()
	case result := <-lines:
		if result.err != nil && !errors.Is(result.err, io.EOF) {
			return "", fmt.Errorf("read login code: %w", result.err)
		}
		return normalizeCode(result.line)
	}
}

// normalizeCode accepts codes typed with separators such as "12 345" or
// "12-345".
func normalizeCode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-':
		default:
			return "", ErrInvalidCode
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyCode
	}

	return b.String(), nil
}

func deliveryName(sentCode *tg.AuthSentCode) string {
	if sentCode == nil {
		return "Telegram"
	}

	switch sentCode.Type.(type) {
	case *tg.AuthSentCodeTypeApp:
		return "the Telegram app"
	case *tg.AuthSentCodeTypeSMS:
		return "SMS"
	case *tg.AuthSentCodeTypeCall, *tg.AuthSentCodeTypeFlashCall:
		return "phone call"
	default:
		return "Telegram"
	}
}
