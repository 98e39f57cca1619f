package quizzes

// QuestionView is the outward-facing question shape while an attempt is in
// progress: the correct answer and explanation stay server-side.
type QuestionView struct {
	ID           int      `json:"id"`
	Type         string   `json:"type"`
	QuestionText string   `json:"question"`
	Options      []string `json:"options,omitempty"`
}

// ResultView is one scored question in a completed attempt.
type ResultView struct {
	ID            int    `json:"id"`
	QuestionText  string `json:"question"`
	Submitted     string `json:"submitted"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
}

// AttemptState is the outward-facing snapshot of a quiz attempt.
type AttemptState struct {
	CurrentIndex  int           `json:"currentIndex"`
	Total         int           `json:"total"`
	Completed     bool          `json:"completed"`
	PendingAnswer string        `json:"pendingAnswer,omitempty"`
	Question      *QuestionView `json:"question,omitempty"`
	Score         int           `json:"score,omitempty"`
	Percentage    int           `json:"percentage,omitempty"`
	MessageTier   string        `json:"messageTier,omitempty"`
	Message       string        `json:"message,omitempty"`
	ColorTier     string        `json:"colorTier,omitempty"`
	Results       []ResultView  `json:"results,omitempty"`
}

var tierMessages = map[string]string{
	"top": "Outstanding! You've mastered this material.",
	"mid": "Great job! You have a solid understanding.",
	"low": "Keep practicing! Review the material and try again.",
}

func toQuestionView(q Question) QuestionView {
	return QuestionView{
		ID:           q.ID,
		Type:         q.Type,
		QuestionText: q.QuestionText,
		Options:      q.Options,
	}
}

func toAttemptState(sess *Session) AttemptState {
	state := AttemptState{
		CurrentIndex: sess.CurrentIndex(),
		Total:        sess.Total(),
		Completed:    sess.Completed(),
	}

	if !sess.Completed() {
		state.PendingAnswer = sess.Pending()
		if sess.Total() > 0 {
			view := toQuestionView(sess.Questions()[sess.CurrentIndex()])
			state.Question = &view
		}
		return state
	}

	state.Score = sess.Score()
	state.Percentage = sess.Percentage()
	state.MessageTier = sess.MessageTier()
	state.Message = tierMessages[state.MessageTier]
	state.ColorTier = sess.ColorTier()

	results := make([]ResultView, 0, sess.Total())
	for i, q := range sess.Questions() {
		submitted := sess.answers[i]
		results = append(results, ResultView{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			Submitted:     submitted,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       answersMatch(submitted, q.CorrectAnswer),
			Explanation:   q.Explanation,
		})
	}
	state.Results = results
	return state
}
