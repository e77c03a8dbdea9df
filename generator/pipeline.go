package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"course_content_generator/apierr"
	"course_content_generator/logger"
)

// Pipeline runs the ordered generation stages: outline, interview questions,
// long-form content, and optionally a plain-text structure diagram. Each
// stage's validated output feeds the next stage's prompt; any failure aborts
// the run with no partial result.
type Pipeline struct {
	llm         LLMClient
	log         *logger.Logger
	skipDiagram bool
}

func NewPipeline(llm LLMClient, log *logger.Logger, skipDiagram bool) (*Pipeline, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{llm: llm, log: log, skipDiagram: skipDiagram}, nil
}

// Generate turns a free-text subject into a full GenerationResult. The input
// must be non-empty; that is checked before any outbound call.
func (p *Pipeline) Generate(ctx context.Context, input string) (GenerationResult, error) {
	if strings.TrimSpace(input) == "" {
		return GenerationResult{}, apierr.InvalidInput(errors.New("input is required and must be a non-empty string"))
	}

	p.log.Info("pipeline start", "stage", "outline")
	raw, err := p.llm.CompleteJSON(ctx, BuildOutlinePrompt(input), "outline", OutlineSchema)
	if err != nil {
		return GenerationResult{}, stageErr("outline", err)
	}
	outline, err := ParseOutline(raw)
	if err != nil {
		return GenerationResult{}, apierr.SchemaViolation(err)
	}
	outlineJSON, err := json.Marshal(outline)
	if err != nil {
		return GenerationResult{}, err
	}

	p.log.Info("pipeline stage done", "stage", "outline", "topics", len(outline.Topics))
	raw, err = p.llm.CompleteJSON(ctx, BuildQuestionsPrompt(string(outlineJSON)), "question_set", QuestionSetSchema)
	if err != nil {
		return GenerationResult{}, stageErr("questions", err)
	}
	questions, err := ParseQuestionSet(raw)
	if err != nil {
		return GenerationResult{}, apierr.SchemaViolation(err)
	}

	p.log.Info("pipeline stage done", "stage", "questions", "groups", len(questions.Questions))
	raw, err = p.llm.CompleteJSON(ctx, BuildContentPrompt(string(outlineJSON)), "content_bundle", ContentBundleSchema)
	if err != nil {
		return GenerationResult{}, stageErr("content", err)
	}
	content, err := ParseContentBundle(raw)
	if err != nil {
		return GenerationResult{}, apierr.SchemaViolation(err)
	}
	p.log.Info("pipeline stage done", "stage", "content", "sections", len(content.Sections))

	result := GenerationResult{
		Outline:       outline,
		QuestionSet:   questions,
		ContentBundle: content,
	}

	if !p.skipDiagram {
		// Free text, no schema; consumers treat it as opaque.
		diagram, err := p.llm.Complete(ctx, BuildDiagramPrompt(string(outlineJSON)))
		if err != nil {
			return GenerationResult{}, stageErr("diagram", err)
		}
		result.Diagram = diagram
		p.log.Info("pipeline stage done", "stage", "diagram")
	}

	return result, nil
}

func stageErr(stage string, err error) error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apierr.UpstreamFailure(0, fmt.Errorf("stage %s: %w", stage, err))
}
