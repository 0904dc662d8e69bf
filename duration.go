package seoforge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// defaultDuration is the fallback when no duration can be derived.
const defaultDuration = "PT30M"

// freeTextDurations maps the ad hoc free-text forms found in existing
// content to fixed durations. This list is closed; extending it would
// silently change the rendered duration of existing articles.
var freeTextDurations = map[string]string{
	"rapide": "PT15M",
	"court":  "PT20M",
	"moyen":  "PT30M",
	"long":   "PT60M",
}

var (
	reMinutes   = regexp.MustCompile(`(?i)^(\d+)\s*(?:min|mins|minutes?)$`)
	reHours     = regexp.MustCompile(`(?i)^(\d+)\s*(?:h|hours?|heures?)$`)
	reHoursMins = regexp.MustCompile(`(?i)^(\d+)\s*h\s*(\d+)$`)
)

// FormatDuration normalizes a duration value to ISO 8601 PT form. It
// accepts numeric minutes, strings already in PT form, numeric strings,
// free text like "30 min" or "2h", and the closed free-text table
// ("rapide", "court", "moyen", "long"). Anything else logs a warning and
// yields the default.
func FormatDuration(v any) string {
	switch d := v.(type) {
	case nil:
		return defaultDuration
	case int:
		return minutesToPT(d)
	case int64:
		return minutesToPT(int(d))
	case float64:
		return minutesToPT(int(d))
	case string:
		return formatDurationString(d)
	default:
		pkgLog.Warn("unsupported duration value", zap.Any("value", v))
		return defaultDuration
	}
}

func formatDurationString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultDuration
	}
	if strings.HasPrefix(strings.ToUpper(s), "PT") {
		return strings.ToUpper(s)
	}
	if isNumeric(s) {
		n, _ := strconv.Atoi(s)
		return minutesToPT(n)
	}
	if fixed, ok := freeTextDurations[strings.ToLower(s)]; ok {
		return fixed
	}
	if m := reMinutes.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return minutesToPT(n)
	}
	if m := reHoursMins.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		n, _ := strconv.Atoi(m[2])
		return minutesToPT(h*60 + n)
	}
	if m := reHours.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		return minutesToPT(h * 60)
	}
	pkgLog.Warn("unparsable duration", zap.String("value", s))
	return defaultDuration
}

func minutesToPT(minutes int) string {
	if minutes <= 0 {
		return defaultDuration
	}
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("PT%dH%dM", h, m)
	case h > 0:
		return fmt.Sprintf("PT%dH", h)
	default:
		return fmt.Sprintf("PT%dM", m)
	}
}

// difficultySynonyms collapses French, English, and numeric difficulty
// inputs into the four canonical levels.
var difficultySynonyms = map[string]string{
	"beginner": "Beginner", "débutant": "Beginner", "debutant": "Beginner",
	"easy": "Beginner", "facile": "Beginner", "1": "Beginner",
	"intermediate": "Intermediate", "intermédiaire": "Intermediate",
	"intermediaire": "Intermediate", "medium": "Intermediate",
	"moyen": "Intermediate", "2": "Intermediate",
	"advanced": "Advanced", "avancé": "Advanced", "avance": "Advanced",
	"hard": "Advanced", "difficile": "Advanced", "3": "Advanced",
	"expert": "Expert", "4": "Expert",
}

// NormalizeDifficultyLevel collapses a difficulty value into
// Beginner/Intermediate/Advanced/Expert. Unrecognized input resolves to
// Beginner, the safe default.
func NormalizeDifficultyLevel(v any) string {
	var s string
	switch d := v.(type) {
	case string:
		s = d
	case int:
		s = strconv.Itoa(d)
	case int64:
		s = strconv.FormatInt(d, 10)
	case float64:
		s = strconv.Itoa(int(d))
	default:
		return "Beginner"
	}
	if level, ok := difficultySynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return "Beginner"
}
