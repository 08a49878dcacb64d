package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/topicd/internal/application"
	"github.com/charmbracelet/lipgloss"
)

const defaultMaxRotations = 3

type RenderOptions struct {
	Now          time.Time
	SettleAfter  time.Duration
	MaxRotations int
}

func renderView(statuses []application.ChatStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Forum Topic Rotation"),
		s.header.Render(fmt.Sprintf("chats: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No monitored chats configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderChat(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderChat(status application.ChatStatus, opts RenderOptions, s styles) string {
	title := s.chat.Render(chatTitle(status))
	if !status.Tracked {
		title += " " + s.empty.Render("(not processed yet)")
	}

	general := s.label.Render("general:") + " " + s.detail.Render(fmt.Sprintf("topic %d", status.GeneralTopicID))
	if settling(status, opts) {
		general += " " + s.warning.Render("[settling]")
	}

	parts := []string{
		title,
		general,
		s.label.Render("marker:") + " " + s.detail.Render(markerLabel(status)),
	}

	if len(status.ExemptTopics) > 0 {
		ids := make([]string, 0, len(status.ExemptTopics))
		for _, id := range status.ExemptTopics {
			ids = append(ids, fmt.Sprintf("%d", id))
		}
		parts = append(parts, s.label.Render("exempt:")+" "+s.detail.Render(strings.Join(ids, ", ")))
	}

	parts = append(parts, rotationLines(status, opts, s)...)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func rotationLines(status application.ChatStatus, opts RenderOptions, s styles) []string {
	if len(status.Rotations) == 0 {
		return []string{s.label.Render("rotations:") + " " + s.empty.Render("none")}
	}

	limit := opts.MaxRotations
	if limit <= 0 {
		limit = defaultMaxRotations
	}

	lines := []string{s.label.Render(fmt.Sprintf("rotations (%d):", len(status.Rotations)))}
	for i, rotation := range status.Rotations {
		if i == limit {
			lines = append(lines, s.empty.Render(fmt.Sprintf("  … %d more", len(status.Rotations)-limit)))
			break
		}

		ageStyle := lipgloss.NewStyle().Foreground(ageColor(rotation.RotatedAt, opts.Now))
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			"  ",
			s.subject.Render(fmt.Sprintf("%q", rotation.Subject)),
			" ",
			s.arrow.Render(fmt.Sprintf("#%d → #%d", rotation.TopicID, rotation.NewGeneralID)),
			" ",
			ageStyle.Render(fmt.Sprintf("(%s)", formatAgo(rotation.RotatedAt, opts.Now))),
		))
	}

	return lines
}

func chatTitle(status application.ChatStatus) string {
	name := strings.TrimSpace(status.Name)
	id := status.ChatID.String()
	if name == "" || name == id {
		return id
	}

	return fmt.Sprintf("%s (%s)", name, id)
}

func markerLabel(status application.ChatStatus) string {
	if status.LastProcessedMarker == 0 {
		return "none"
	}

	return fmt.Sprintf("message %d", status.LastProcessedMarker)
}

func settling(status application.ChatStatus, opts RenderOptions) bool {
	if opts.Now.IsZero() || opts.SettleAfter <= 0 || status.GeneralCreatedAt.IsZero() {
		return false
	}

	return opts.Now.Sub(status.GeneralCreatedAt) < opts.SettleAfter
}

func formatAgo(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.UTC().Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed/time.Minute), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed/time.Hour), "hour") + " ago"
	default:
		return plural(int(elapsed/(24*time.Hour)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}

	return fmt.Sprintf("%d %ss", n, unit)
}

// ageColor fades from bright white for a fresh rotation to grey after a week.
func ageColor(at, now time.Time) lipgloss.Color {
	if now.IsZero() || at.IsZero() || at.After(now) {
		return lipgloss.Color("255")
	}

	week := (7 * 24 * time.Hour).Seconds()
	return interpolateColor(week-now.Sub(at).Seconds(), 0, week)
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp: 240 at min, 255 at max.
	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
