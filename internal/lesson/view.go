package lesson

import (
	"fmt"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/playback"
	"github.com/spacey-learn/spacey/internal/results"
)

// View is a read-only snapshot for presentation hosts.
type View struct {
	SessionID   string `json:"sessionId"`
	LessonID    string `json:"lessonId"`
	LessonTitle string `json:"lessonTitle"`
	Stage       string `json:"stage"`

	SectionIndex int    `json:"sectionIndex"`
	SectionCount int    `json:"sectionCount"`
	SectionTitle string `json:"sectionTitle,omitempty"`
	ItemIndex    int    `json:"itemIndex"`

	Narration         string `json:"narration"`
	NarrationComplete bool   `json:"narrationComplete"`
	AnimationTag      string `json:"animationTag,omitempty"`
	Mood              string `json:"mood,omitempty"`
	VisualRef         string `json:"visualRef,omitempty"`
	Transition        string `json:"transition,omitempty"`

	AwaitingPermission bool `json:"awaitingPermission"`
	PermissionDenied   bool `json:"permissionDenied"`

	Quiz    *QuizView    `json:"quiz,omitempty"`
	Results *ResultsView `json:"results,omitempty"`
}

// QuizView describes the current question.
type QuizView struct {
	Index           int      `json:"index"`
	Total           int      `json:"total"`
	Prompt          string   `json:"prompt"`
	Options         []string `json:"options"`
	Selected        int      `json:"selected"`
	FeedbackVisible bool     `json:"feedbackVisible"`
	Correct         bool     `json:"correct"`
	Feedback        string   `json:"feedback,omitempty"`
	Score           int      `json:"score"`
	IsLast          bool     `json:"isLast"`
}

// ResultsView describes the final score and badges.
type ResultsView struct {
	Score        int             `json:"score"`
	Total        int             `json:"total"`
	Percentage   int             `json:"percentage"`
	IsPerfect    bool            `json:"isPerfect"`
	Tier         string          `json:"tier"`
	Message      string          `json:"message"`
	NewBadges    []catalog.Badge `json:"newBadges"`
	Badges       []catalog.Badge `json:"badges"`
	PersistError string          `json:"persistError,omitempty"`

	// BadgesUnknown means the held badges could not be read, so NewBadges
	// and Badges are left empty.
	BadgesUnknown bool `json:"badgesUnknown,omitempty"`
}

// QuestionLine is the narrator line for question index i (0-based).
func QuestionLine(i int, prompt string) string {
	return fmt.Sprintf("Question %d: %s", i+1, prompt)
}

// View returns the current snapshot.
func (s *Session) View() View {
	st := s.play.State()
	v := View{
		SessionID:          s.id,
		LessonID:           s.cat.ID(),
		LessonTitle:        s.cat.Title(),
		Stage:              st.Stage.String(),
		SectionIndex:       st.SectionIndex,
		SectionCount:       s.cat.SectionCount(),
		ItemIndex:          st.ItemIndex,
		AwaitingPermission: s.play.Suspended(),
		PermissionDenied:   st.PermissionDenied && !st.PermissionGranted,
	}

	switch {
	case st.Stage.Narrating():
		if sec, ok := playback.SectionOf(s.cat, st); ok {
			v.SectionTitle = sec.Title
			v.Mood = sec.AvatarState
		}
		v.Narration = st.Revealed
		v.NarrationComplete = st.RevealComplete
		v.AnimationTag = s.entered.AnimationTag
		v.VisualRef = s.entered.Item.VisualRef
		v.Transition = s.entered.Item.SectionTransition
	case st.Stage == playback.StageQuiz && s.quiz != nil:
		v.Quiz = s.quizView()
		v.Narration, v.NarrationComplete = s.line, s.lineDone
		if v.Quiz.FeedbackVisible {
			v.Mood = string(results.AnswerMood(v.Quiz.Correct))
		}
	case st.Stage == playback.StageResults && s.outcome != nil:
		ev := s.outcome.Evaluation
		v.Narration, v.NarrationComplete = s.line, s.lineDone
		v.Mood = string(ev.Mood)
		rv := &ResultsView{
			Score:      ev.Result.Score,
			Total:      ev.Result.Total,
			Percentage: ev.Result.Percentage,
			IsPerfect:  ev.Result.IsPerfect,
			Tier:       ev.Tier.String(),
			Message:    ev.Message,
			NewBadges:  ev.Newly,
			Badges:     ev.Earned,
		}
		if s.outcome.BadgesUnknown {
			rv.Badges = nil
			rv.BadgesUnknown = true
		}
		if s.outcome.PersistErr != nil {
			rv.PersistError = s.outcome.PersistErr.Error()
		}
		v.Results = rv
	}
	return v
}

func (s *Session) quizView() *QuizView {
	st := s.quiz.State()
	q, _ := s.quiz.Current()
	qv := &QuizView{
		Index:           st.QuestionIndex,
		Total:           s.quiz.Total(),
		Prompt:          q.Prompt,
		Options:         q.Options,
		Selected:        st.Selected,
		FeedbackVisible: st.FeedbackVisible,
		Correct:         st.LastCorrect,
		Score:           st.Score,
		IsLast:          s.quiz.IsLast(),
	}
	if st.FeedbackVisible {
		qv.Feedback = q.Feedback(st.LastCorrect)
	}
	return qv
}
