package quizzes

import "testing"

func TestNormalizeQuestionsCoercesAndDrops(t *testing.T) {
	raw := []Question{
		{Type: " MCQ ", QuestionText: " Which? ", Options: []string{"a", " b ", ""}, CorrectAnswer: " a "},
		{Type: "fill", QuestionText: "Blank is ___", CorrectAnswer: "word", Options: []string{"stray"}},
		{Type: "essay", QuestionText: "Discuss", CorrectAnswer: "n/a"},
		{Type: "short", QuestionText: "", CorrectAnswer: "x"},
		{Type: "mcq", QuestionText: "One option?", Options: []string{"only"}, CorrectAnswer: "only"},
		{Type: "short", QuestionText: "Good one?", CorrectAnswer: "yes"},
	}

	got := NormalizeQuestions(raw)
	if len(got) != 3 {
		t.Fatalf("expected 3 surviving questions, got %d", len(got))
	}

	if got[0].Type != TypeMCQ || len(got[0].Options) != 2 {
		t.Fatalf("mcq not coerced: %+v", got[0])
	}
	if got[1].Type != TypeFill || got[1].Options != nil {
		t.Fatalf("fill should drop options: %+v", got[1])
	}

	for i, q := range got {
		if q.ID != i+1 {
			t.Fatalf("expected sequential ids, got %d at %d", q.ID, i)
		}
	}

	if err := ValidateQuestions(got); err != nil {
		t.Fatalf("normalized questions should validate: %v", err)
	}
}

func TestValidateQuestionsRejectsMalformed(t *testing.T) {
	bad := []Question{{ID: 1, Type: "essay", QuestionText: "Discuss", CorrectAnswer: "x"}}
	if err := ValidateQuestions(bad); err == nil {
		t.Fatal("expected error for unknown type")
	}

	badMCQ := []Question{{ID: 1, Type: TypeMCQ, QuestionText: "Pick", Options: []string{"a"}, CorrectAnswer: "a"}}
	if err := ValidateQuestions(badMCQ); err == nil {
		t.Fatal("expected error for single-option mcq")
	}
}
