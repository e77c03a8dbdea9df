package generator

import "fmt"

// Diagram keys identify the displayable nodes eligible for an on-demand
// diagram request. The frontend derives the same keys; DiagramKeys is the
// canonical enumeration for a result.
const (
	KeyOverview           = "overview"
	KeyInterviewQuestions = "interview-questions"
)

func TopicKey(i int) string { return fmt.Sprintf("topic-%d", i) }

func QuestionGroupKey(i int) string { return fmt.Sprintf("question-%d", i) }

func ChapterKey(i int) string { return fmt.Sprintf("chapter-%d", i) }

func SubtopicKey(i, j int) string { return fmt.Sprintf("subtopic-%d-%d", i, j) }

// DiagramKeys enumerates every diagram key a result exposes: the overview,
// one per topic, the interview-questions block, one per question group, one
// per chapter section, and one per section subtopic.
func DiagramKeys(r GenerationResult) []string {
	keys := []string{KeyOverview}
	for i := range r.Outline.Topics {
		keys = append(keys, TopicKey(i))
	}
	keys = append(keys, KeyInterviewQuestions)
	for i := range r.QuestionSet.Questions {
		keys = append(keys, QuestionGroupKey(i))
	}
	for i, sec := range r.ContentBundle.Sections {
		keys = append(keys, ChapterKey(i))
		for j := range sec.Subtopics {
			keys = append(keys, SubtopicKey(i, j))
		}
	}
	return keys
}
