package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the lesson document major version this player reads.
const SupportedMajor = "v1"

// Validate performs all semantic checks on a lesson script and returns a
// *ConfigError listing every problem found, or nil if the script is valid.
func Validate(s LessonScript) error {
	var errs []string

	if strings.TrimSpace(s.ID) == "" {
		errs = append(errs, "lesson id is required")
	}

	if s.Version != "" {
		v := s.Version
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		switch {
		case !semver.IsValid(v):
			errs = append(errs, fmt.Sprintf("version %q is not a valid semantic version", s.Version))
		case semver.Major(v) != SupportedMajor:
			errs = append(errs, fmt.Sprintf("version %q is not supported (want %s.x.y)", s.Version, SupportedMajor))
		}
	}

	errs = append(errs, checkSection("introduction", s.Introduction)...)
	if len(s.Sections) == 0 {
		errs = append(errs, "at least one content section is required")
	}
	sectionIDs := make(map[string]bool, len(s.Sections))
	for i, sec := range s.Sections {
		label := fmt.Sprintf("section %d", i)
		if sec.ID != "" {
			label = fmt.Sprintf("section %q", sec.ID)
			if sectionIDs[sec.ID] {
				errs = append(errs, fmt.Sprintf("duplicate section id: %q", sec.ID))
			}
			sectionIDs[sec.ID] = true
		}
		errs = append(errs, checkSection(label, sec)...)
	}
	errs = append(errs, checkSection("conclusion", s.Conclusion)...)

	if len(s.QuizQuestions) == 0 {
		errs = append(errs, "at least one quiz question is required")
	}
	questionIDs := make(map[string]bool, len(s.QuizQuestions))
	for i, q := range s.QuizQuestions {
		prefix := fmt.Sprintf("question %d", i)
		if q.ID == "" {
			errs = append(errs, prefix+": id is required")
		} else {
			prefix = fmt.Sprintf("question %q", q.ID)
			if questionIDs[q.ID] {
				errs = append(errs, fmt.Sprintf("duplicate question id: %q", q.ID))
			}
			questionIDs[q.ID] = true
		}
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, prefix+": prompt is required")
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("%s: needs at least 2 options, got %d", prefix, len(q.Options)))
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("%s: correctOptionIndex %d out of range [0, %d)", prefix, q.CorrectOptionIndex, len(q.Options)))
		}
	}

	errs = append(errs, checkBadge("completion", s.BadgeDefs.Completion)...)
	errs = append(errs, checkBadge("perfectScore", s.BadgeDefs.PerfectScore)...)
	if s.BadgeDefs.Completion.Name != "" && s.BadgeDefs.Completion.Name == s.BadgeDefs.PerfectScore.Name {
		errs = append(errs, fmt.Sprintf("badges completion and perfectScore share the name %q", s.BadgeDefs.Completion.Name))
	}

	tiers := s.FeedbackTiers.withDefaults()
	if tiers.GoodThreshold <= 0 || tiers.GreatThreshold >= 100 || tiers.GoodThreshold >= tiers.GreatThreshold {
		errs = append(errs, fmt.Sprintf("feedback thresholds must satisfy 0 < good < great < 100, got good=%d great=%d",
			tiers.GoodThreshold, tiers.GreatThreshold))
	}

	if len(errs) > 0 {
		return &ConfigError{Source: s.ID, Problems: errs}
	}
	return nil
}

func checkSection(label string, sec Section) []string {
	var errs []string
	if len(sec.Items) == 0 {
		errs = append(errs, label+": has no items")
	}
	for i, item := range sec.Items {
		if strings.TrimSpace(item.Text) == "" {
			errs = append(errs, fmt.Sprintf("%s item %d: text is required", label, i))
		}
		if item.AutoAdvanceDelayMs < 0 {
			errs = append(errs, fmt.Sprintf("%s item %d: autoAdvanceDelayMs must be >= 0, got %d", label, i, item.AutoAdvanceDelayMs))
		}
	}
	return errs
}

func checkBadge(label string, b Badge) []string {
	var errs []string
	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, fmt.Sprintf("badge %s: name is required", label))
	}
	if b.EarnedDate != nil {
		errs = append(errs, fmt.Sprintf("badge %s: earnedDate is set at award time, not in the lesson", label))
	}
	return errs
}
