package catalog

import "time"

// Default percentage thresholds for the feedback tiers.
const (
	DefaultGreatThreshold = 80
	DefaultGoodThreshold  = 60
)

// ContentItem is one narrated unit of a lesson.
type ContentItem struct {
	Text         string `yaml:"text" json:"text"`
	AnimationTag string `yaml:"animationTag,omitempty" json:"animationTag,omitempty"`
	VisualRef    string `yaml:"visualRef,omitempty" json:"visualRef,omitempty"`

	// WaitForPermission blocks advancing past this item until the device
	// permission has been granted.
	WaitForPermission bool `yaml:"waitForPermission,omitempty" json:"waitForPermission,omitempty"`

	// AutoAdvanceDelayMs is only consulted for items with a SectionTransition.
	// Zero means unspecified.
	AutoAdvanceDelayMs int    `yaml:"autoAdvanceDelayMs,omitempty" json:"autoAdvanceDelayMs,omitempty"`
	SectionTransition  string `yaml:"sectionTransition,omitempty" json:"sectionTransition,omitempty"`
}

// AutoAdvanceDelay returns the configured delay and whether one was set.
func (c ContentItem) AutoAdvanceDelay() (time.Duration, bool) {
	if c.AutoAdvanceDelayMs <= 0 {
		return 0, false
	}
	return time.Duration(c.AutoAdvanceDelayMs) * time.Millisecond, true
}

// Section is an ordered group of content items.
type Section struct {
	ID          string        `yaml:"id" json:"id"`
	Title       string        `yaml:"title,omitempty" json:"title,omitempty"`
	AvatarState string        `yaml:"avatarState,omitempty" json:"avatarState,omitempty"`
	Items       []ContentItem `yaml:"items" json:"items"`
}

// QuizQuestion is a multiple-choice question.
type QuizQuestion struct {
	ID                 string   `yaml:"id" json:"id"`
	Prompt             string   `yaml:"prompt" json:"prompt"`
	Options            []string `yaml:"options" json:"options"`
	CorrectOptionIndex int      `yaml:"correctOptionIndex" json:"correctOptionIndex"`
	FeedbackCorrect    string   `yaml:"feedbackCorrect" json:"feedbackCorrect"`
	FeedbackIncorrect  string   `yaml:"feedbackIncorrect" json:"feedbackIncorrect"`
}

// IsCorrect reports whether optionIndex is the correct answer.
func (q QuizQuestion) IsCorrect(optionIndex int) bool {
	return optionIndex == q.CorrectOptionIndex
}

// Feedback returns the feedback text for a correct or incorrect answer.
func (q QuizQuestion) Feedback(correct bool) string {
	if correct {
		return q.FeedbackCorrect
	}
	return q.FeedbackIncorrect
}

// Badge is an achievement record, keyed by Name. EarnedDate is only ever
// set at award time; documents cannot carry it.
type Badge struct {
	Name        string     `yaml:"name" json:"name"`
	Image       string     `yaml:"image,omitempty" json:"image,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	EarnedDate  *time.Time `yaml:"-" json:"earnedDate,omitempty"`
}

// BadgeDefs names the badges a lesson can award.
type BadgeDefs struct {
	Completion   Badge `yaml:"completion" json:"completion"`
	PerfectScore Badge `yaml:"perfectScore" json:"perfectScore"`
}

// FeedbackTiers holds the learner-facing message for each tier and the
// percentage thresholds for "great" and "good".
type FeedbackTiers struct {
	Perfect        string `yaml:"perfect" json:"perfect"`
	Great          string `yaml:"great" json:"great"`
	Good           string `yaml:"good" json:"good"`
	NeedsPractice  string `yaml:"needsPractice" json:"needsPractice"`
	GreatThreshold int    `yaml:"greatThreshold,omitempty" json:"greatThreshold,omitempty"`
	GoodThreshold  int    `yaml:"goodThreshold,omitempty" json:"goodThreshold,omitempty"`
}

// withDefaults fills unset thresholds.
func (f FeedbackTiers) withDefaults() FeedbackTiers {
	if f.GreatThreshold == 0 {
		f.GreatThreshold = DefaultGreatThreshold
	}
	if f.GoodThreshold == 0 {
		f.GoodThreshold = DefaultGoodThreshold
	}
	return f
}

// LessonScript is the decoded lesson document.
type LessonScript struct {
	ID            string         `yaml:"id" json:"id"`
	Title         string         `yaml:"title" json:"title"`
	Description   string         `yaml:"description,omitempty" json:"description,omitempty"`
	Version       string         `yaml:"version,omitempty" json:"version,omitempty"`
	Duration      string         `yaml:"duration,omitempty" json:"duration,omitempty"`
	Ages          string         `yaml:"ages,omitempty" json:"ages,omitempty"`
	Introduction  Section        `yaml:"introduction" json:"introduction"`
	Sections      []Section      `yaml:"sections" json:"sections"`
	Conclusion    Section        `yaml:"conclusion" json:"conclusion"`
	QuizQuestions []QuizQuestion `yaml:"quizQuestions" json:"quizQuestions"`
	BadgeDefs     BadgeDefs      `yaml:"badgeDefs" json:"badgeDefs"`
	FeedbackTiers FeedbackTiers  `yaml:"feedbackTiers" json:"feedbackTiers"`
}
