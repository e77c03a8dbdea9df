package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course_content_generator/generator"
)

func sampleResult(title string) generator.GenerationResult {
	return generator.GenerationResult{
		Outline: generator.Outline{
			Title: title,
			Topics: []generator.Topic{
				{Title: "Chapter 1", Subtopics: []string{"1.1", "1.2"}},
			},
		},
		QuestionSet: generator.QuestionSet{Questions: []generator.QuestionGroup{
			{Subtopic: "1.1", Questions: []string{"Why?"}},
		}},
		ContentBundle: generator.ContentBundle{Sections: []generator.Section{
			{ChapterTitle: "Chapter 1", ChapterContent: "Intro.", Subtopics: []generator.SubtopicContent{
				{Title: "1.1", Content: "Body."},
			}},
		}},
		Diagram: "T\n+-- Chapter 1\n",
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	diagrams := map[string]json.RawMessage{
		"overview":  json.RawMessage(`{"imageUrl":"https://img.example/o.png"}`),
		"topic-0":   json.RawMessage(`{"imageUrl":"https://img.example/t0.png"}`),
		"chapter-0": json.RawMessage(`{"imageUrl":"https://img.example/c0.png"}`),
	}
	saved, err := s.Save("Linear Algebra", sampleResult("Linear Algebra"), diagrams)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NotZero(t, saved.Timestamp)

	got, err := s.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, sampleResult("Linear Algebra"), got.Data)
	assert.Equal(t, diagrams, got.Diagrams)
	assert.Equal(t, saved.Title, got.Title)
	assert.Equal(t, saved.Timestamp, got.Timestamp)
}

func TestSaveWithoutDiagrams(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	saved, err := s.Save("A", sampleResult("A"), nil)
	require.NoError(t, err)

	got, err := s.Get(saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Diagrams)
}

func TestListNewestFirst(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	first, err := s.Save("first", sampleResult("first"), nil)
	require.NoError(t, err)
	second, err := s.Save("second", sampleResult("second"), nil)
	require.NoError(t, err)
	third, err := s.Save("third", sampleResult("third"), nil)
	require.NoError(t, err)

	items, err := s.List()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID},
		[]string{items[0].ID, items[1].ID, items[2].ID})
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	a, _ := s.Save("a", sampleResult("a"), nil)
	b, _ := s.Save("b", sampleResult("b"), nil)
	c, _ := s.Save("c", sampleResult("c"), nil)

	require.NoError(t, s.Delete(b.ID))

	items, err := s.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Remaining entries keep their relative order.
	assert.Equal(t, c.ID, items[0].ID)
	assert.Equal(t, a.ID, items[1].ID)

	_, err = s.Get(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissing(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	assert.ErrorIs(t, s.Delete("no-such-id"), ErrNotFound)
}

func TestGetMissing(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
