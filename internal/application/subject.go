package application

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/bnema/topicd/internal/domain"
)

const (
	maxSubjectRunes = 40
	minSubjectRunes = 3
	fallbackLayout  = "Jan 02 15:04"
)

var (
	greetingPrefix = regexp.MustCompile(`(?i)^(hi|hello|hey|yo|sup|what'?s up)\b[\s,!?.:;-]*`)
	sentenceEnd    = regexp.MustCompile(`[.!](\s|$)`)
	boldHeader     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// DeriveSubject picks a topic title for a finished exchange. humans are the
// exchange's human messages, newest first.
func DeriveSubject(humans []domain.Message, reply domain.Message, now time.Time) string {
	for _, human := range humans {
		if subject, ok := subjectFromHuman(human.Text); ok {
			return subject
		}
	}

	if subject, ok := subjectFromReply(reply.Text); ok {
		return subject
	}

	return FallbackSubject(now)
}

func FallbackSubject(now time.Time) string {
	return domain.DefaultGeneralTitle + " " + now.UTC().Format(fallbackLayout)
}

// SanitizeSubject applies the title rules to an operator supplied name.
func SanitizeSubject(raw string, now time.Time) string {
	subject := truncateSubject(cleanLine(firstLine(raw)))
	if utf8.RuneCountInString(subject) < 1 {
		return FallbackSubject(now)
	}

	return subject
}

func subjectFromHuman(text string) (string, bool) {
	line := cleanLine(firstLine(text))
	line = cleanLine(greetingPrefix.ReplaceAllString(line, ""))

	if idx := strings.Index(line, "?"); idx >= 0 {
		line = line[:idx+1]
	} else if loc := sentenceEnd.FindStringIndex(line); loc != nil {
		line = line[:loc[0]]
	}

	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(strings.Trim(line, "?!.,;: ")) < minSubjectRunes {
		return "", false
	}

	return truncateSubject(capitalize(line)), true
}

func subjectFromReply(text string) (string, bool) {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || greetingPrefix.MatchString(line) || strings.HasPrefix(line, "👋") {
			continue
		}

		if match := boldHeader.FindStringSubmatch(line); match != nil {
			header := cleanLine(match[1])
			if utf8.RuneCountInString(header) >= minSubjectRunes {
				return truncateSubject(header), true
			}
		}

		if utf8.RuneCountInString(line) > 15 {
			if idx := strings.Index(line, ":"); idx > 0 && utf8.RuneCountInString(line[:idx]) <= 30 {
				prefix := cleanLine(line[:idx])
				if utf8.RuneCountInString(prefix) > 5 {
					return truncateSubject(prefix), true
				}
			}
		}
	}

	return "", false
}

func firstLine(text string) string {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}

	return ""
}

// cleanLine drops control characters and markdown decoration and collapses
// runs of whitespace.
func cleanLine(line string) string {
	line = strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r), r == '*', r == '`', r == '_':
			return -1
		default:
			return r
		}
	}, line)

	line = strings.TrimLeft(strings.TrimSpace(line), "#>-• ")

	return strings.Join(strings.Fields(line), " ")
}

func truncateSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) <= maxSubjectRunes {
		return subject
	}

	cut := string(runes[:maxSubjectRunes-3])
	if idx := strings.LastIndex(cut, " "); idx > 0 && utf8.RuneCountInString(cut[:idx]) >= maxSubjectRunes/2 {
		cut = cut[:idx]
	}

	return strings.TrimRight(cut, " ,;:-") + "..."
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
