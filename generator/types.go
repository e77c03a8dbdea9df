package generator

// Outline is the stage 1 artifact: the chapter/subtopic decomposition of the
// input subject.
type Outline struct {
	Title  string  `json:"title"`
	Topics []Topic `json:"topics"`
}

type Topic struct {
	Title     string   `json:"title"`
	Subtopics []string `json:"subtopics"`
}

// QuestionSet is the stage 2 artifact: interview questions grouped by
// subtopic. Subtopic names are expected to follow the outline, but that is
// asked for in the prompt, not checked by the schema.
type QuestionSet struct {
	Questions []QuestionGroup `json:"questions"`
}

type QuestionGroup struct {
	Subtopic  string   `json:"subtopic"`
	Questions []string `json:"questions"`
}

// ContentBundle is the stage 3 artifact: long-form content per chapter and
// subtopic.
type ContentBundle struct {
	Sections []Section `json:"sections"`
}

type Section struct {
	ChapterTitle   string            `json:"chapterTitle"`
	ChapterContent string            `json:"chapterContent"`
	Subtopics      []SubtopicContent `json:"subtopics"`
}

type SubtopicContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GenerationResult aggregates one full pipeline run. Diagram holds the
// stage 4 plain-text structure visualization; empty when that stage is
// disabled.
type GenerationResult struct {
	Outline       Outline       `json:"topics_and_subtopics"`
	QuestionSet   QuestionSet   `json:"interviewQuestions"`
	ContentBundle ContentBundle `json:"detailedContent"`
	Diagram       string        `json:"diagram,omitempty"`
}
