package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// MockLLM is a scripted client for local runs and tests. Structured calls are
// answered by schema name; plain-text calls return TextReply. Calls counts
// every invocation so tests can assert that no outbound call was made.
type MockLLM struct {
	Replies   map[string]any
	TextReply string
	Err       error
	Calls     atomic.Int64
}

// NewMockLLM returns a mock with a small self-consistent course bundle,
// usable end to end without a provider key.
func NewMockLLM() *MockLLM {
	outline := Outline{
		Title: "Sample Course",
		Topics: []Topic{
			{Title: "Chapter 1: Getting Started", Subtopics: []string{"1.1 Basics", "1.2 History"}},
			{Title: "Chapter 2: Going Deeper", Subtopics: []string{"2.1 Core Concepts", "2.2 Practice"}},
		},
	}
	var groups []QuestionGroup
	var sections []Section
	for _, t := range outline.Topics {
		sec := Section{ChapterTitle: t.Title, ChapterContent: "Overview of " + t.Title + "."}
		for _, s := range t.Subtopics {
			groups = append(groups, QuestionGroup{
				Subtopic:  s,
				Questions: []string{"What is " + s + "?", "Why does " + s + " matter?"},
			})
			sec.Subtopics = append(sec.Subtopics, SubtopicContent{
				Title:   s,
				Content: "Detailed discussion of " + s + ".",
			})
		}
		sections = append(sections, sec)
	}
	return &MockLLM{
		Replies: map[string]any{
			"outline":        outline,
			"question_set":   QuestionSet{Questions: groups},
			"content_bundle": ContentBundle{Sections: sections},
		},
		TextReply: "Sample Course\n+-- Chapter 1\n+-- Chapter 2\n",
	}
}

func (m *MockLLM) CompleteJSON(_ context.Context, _ Prompt, schemaName string, _ map[string]any) ([]byte, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	v, ok := m.Replies[schemaName]
	if !ok {
		return nil, fmt.Errorf("mock llm: no reply scripted for %q", schemaName)
	}
	if raw, ok := v.([]byte); ok {
		return raw, nil
	}
	return json.Marshal(v)
}

func (m *MockLLM) Complete(_ context.Context, _ Prompt) (string, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return "", m.Err
	}
	return m.TextReply, nil
}
