package catalog

import "slices"

// Catalog is a validated, read-only lesson script. The zero value is not
// usable; obtain one from Parse, Load, or Builtin.
type Catalog struct {
	script LessonScript
}

// New validates script and wraps it in a Catalog.
func New(script LessonScript) (*Catalog, error) {
	if err := Validate(script); err != nil {
		return nil, err
	}
	script.FeedbackTiers = script.FeedbackTiers.withDefaults()
	return &Catalog{script: script}, nil
}

func (c *Catalog) ID() string          { return c.script.ID }
func (c *Catalog) Title() string       { return c.script.Title }
func (c *Catalog) Description() string { return c.script.Description }
func (c *Catalog) Version() string     { return c.script.Version }

// Duration and Ages are free-form preview labels, e.g. "5-7 minutes".
func (c *Catalog) Duration() string { return c.script.Duration }
func (c *Catalog) Ages() string     { return c.script.Ages }

// Introduction returns the introduction section.
func (c *Catalog) Introduction() Section { return cloneSection(c.script.Introduction) }

// Conclusion returns the conclusion section.
func (c *Catalog) Conclusion() Section { return cloneSection(c.script.Conclusion) }

// SectionCount returns the number of content sections.
func (c *Catalog) SectionCount() int { return len(c.script.Sections) }

// Section returns the content section at index i.
func (c *Catalog) Section(i int) (Section, bool) {
	if i < 0 || i >= len(c.script.Sections) {
		return Section{}, false
	}
	return cloneSection(c.script.Sections[i]), true
}

// Sections returns a copy of all content sections in order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.script.Sections))
	for i, s := range c.script.Sections {
		out[i] = cloneSection(s)
	}
	return out
}

// QuestionCount returns the number of quiz questions.
func (c *Catalog) QuestionCount() int { return len(c.script.QuizQuestions) }

// Question returns the quiz question at index i.
func (c *Catalog) Question(i int) (QuizQuestion, bool) {
	if i < 0 || i >= len(c.script.QuizQuestions) {
		return QuizQuestion{}, false
	}
	q := c.script.QuizQuestions[i]
	q.Options = slices.Clone(q.Options)
	return q, true
}

// Questions returns a copy of all quiz questions in order.
func (c *Catalog) Questions() []QuizQuestion {
	out := make([]QuizQuestion, 0, len(c.script.QuizQuestions))
	for i := range c.script.QuizQuestions {
		q, _ := c.Question(i)
		out = append(out, q)
	}
	return out
}

// Badges returns the badge definitions. EarnedDate is always nil.
func (c *Catalog) Badges() BadgeDefs { return c.script.BadgeDefs }

// FeedbackTiers returns the tier messages with thresholds filled in.
func (c *Catalog) FeedbackTiers() FeedbackTiers { return c.script.FeedbackTiers }

// Script returns a deep copy of the underlying document.
func (c *Catalog) Script() LessonScript {
	s := c.script
	s.Introduction = cloneSection(s.Introduction)
	s.Conclusion = cloneSection(s.Conclusion)
	s.Sections = c.Sections()
	s.QuizQuestions = c.Questions()
	return s
}

// ItemCount returns the total number of narrated items across the
// introduction, all sections, and the conclusion.
func (c *Catalog) ItemCount() int {
	n := len(c.script.Introduction.Items) + len(c.script.Conclusion.Items)
	for _, s := range c.script.Sections {
		n += len(s.Items)
	}
	return n
}

func cloneSection(s Section) Section {
	s.Items = slices.Clone(s.Items)
	return s
}
