package generator

import (
	"encoding/json"
	"fmt"
)

// Structural validation of model output. Checks are shape-level only:
// cross-stage consistency (question groups matching outline subtopics and so
// on) is carried by the prompts, not re-checked here.

// ParseOutline decodes and validates a stage 1 response body.
func ParseOutline(raw []byte) (Outline, error) {
	var o Outline
	if err := json.Unmarshal(raw, &o); err != nil {
		return Outline{}, fmt.Errorf("decode outline: %w", err)
	}
	if err := ValidateOutline(o); err != nil {
		return Outline{}, err
	}
	return o, nil
}

// ValidateOutline checks the outline invariants: non-empty title, at least
// one topic, and every topic titled with at least one non-empty subtopic.
func ValidateOutline(o Outline) error {
	if o.Title == "" {
		return fmt.Errorf("outline: missing title")
	}
	if len(o.Topics) == 0 {
		return fmt.Errorf("outline: no topics")
	}
	for i, t := range o.Topics {
		if t.Title == "" {
			return fmt.Errorf("outline: topic %d has no title", i)
		}
		if len(t.Subtopics) == 0 {
			return fmt.Errorf("outline: topic %q has no subtopics", t.Title)
		}
		for j, s := range t.Subtopics {
			if s == "" {
				return fmt.Errorf("outline: topic %q subtopic %d is empty", t.Title, j)
			}
		}
	}
	return nil
}

// ParseQuestionSet decodes and validates a stage 2 response body.
func ParseQuestionSet(raw []byte) (QuestionSet, error) {
	var qs QuestionSet
	if err := json.Unmarshal(raw, &qs); err != nil {
		return QuestionSet{}, fmt.Errorf("decode question set: %w", err)
	}
	if err := ValidateQuestionSet(qs); err != nil {
		return QuestionSet{}, err
	}
	return qs, nil
}

func ValidateQuestionSet(qs QuestionSet) error {
	if qs.Questions == nil {
		return fmt.Errorf("question set: missing questions field")
	}
	for i, g := range qs.Questions {
		if g.Subtopic == "" {
			return fmt.Errorf("question set: group %d has no subtopic", i)
		}
		if g.Questions == nil {
			return fmt.Errorf("question set: group %q missing questions", g.Subtopic)
		}
	}
	return nil
}

// ParseContentBundle decodes and validates a stage 3 response body.
func ParseContentBundle(raw []byte) (ContentBundle, error) {
	var cb ContentBundle
	if err := json.Unmarshal(raw, &cb); err != nil {
		return ContentBundle{}, fmt.Errorf("decode content bundle: %w", err)
	}
	if err := ValidateContentBundle(cb); err != nil {
		return ContentBundle{}, err
	}
	return cb, nil
}

func ValidateContentBundle(cb ContentBundle) error {
	if cb.Sections == nil {
		return fmt.Errorf("content bundle: missing sections field")
	}
	for i, s := range cb.Sections {
		if s.ChapterTitle == "" {
			return fmt.Errorf("content bundle: section %d has no chapter title", i)
		}
		if s.Subtopics == nil {
			return fmt.Errorf("content bundle: section %q missing subtopics", s.ChapterTitle)
		}
		for j, sub := range s.Subtopics {
			if sub.Title == "" {
				return fmt.Errorf("content bundle: section %q subtopic %d has no title", s.ChapterTitle, j)
			}
		}
	}
	return nil
}
