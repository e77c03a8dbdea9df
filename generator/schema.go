package generator

// JSON schemas sent with each structured stage so the model is constrained to
// the shapes validate.go re-checks on the way back.

var OutlineSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type":        "string",
			"description": "Main subject of the course or book",
		},
		"topics": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Chapter title, clear and descriptive",
					},
					"subtopics": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required":             []string{"title", "subtopics"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"title", "topics"},
	"additionalProperties": false,
}

var QuestionSetSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subtopic": map[string]any{"type": "string"},
					"questions": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required":             []string{"subtopic", "questions"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"questions"},
	"additionalProperties": false,
}

var ContentBundleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"sections": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"chapterTitle":   map[string]any{"type": "string"},
					"chapterContent": map[string]any{"type": "string"},
					"subtopics": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title":   map[string]any{"type": "string"},
								"content": map[string]any{"type": "string"},
							},
							"required":             []string{"title", "content"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []string{"chapterTitle", "chapterContent", "subtopics"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"sections"},
	"additionalProperties": false,
}
