package llm

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed prompts/study_aids_v1.txt
var studyAidsPrompt string

// BuildStudyAidsPrompt renders the generation prompt for a document. The
// question-type mixture baked into the template (60% mcq, 25% fill, 15%
// short) is an instruction to the generator, not a guarantee on the response.
func BuildStudyAidsPrompt(input GenerateInput) (system string, user string) {
	system = studyAidsPrompt
	user = fmt.Sprintf(
		"Title: %s\n\nGenerate a summary and exactly %d quiz questions for the following document:\n\n%s",
		strings.TrimSpace(input.Title),
		input.QuestionCount,
		input.Content,
	)
	return system, user
}
