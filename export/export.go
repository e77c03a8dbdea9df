// Package export renders a generation bundle as a standalone HTML document.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"course_content_generator/generator"
)

const pageStyle = `body{max-width:860px;margin:2rem auto;padding:0 1rem;font-family:Georgia,serif;line-height:1.6;color:#222}
h1{border-bottom:2px solid #ddd;padding-bottom:.3rem}
h2{margin-top:2.2rem}
pre{background:#f6f6f6;padding:1rem;overflow-x:auto;font-size:.85rem}
ol,ul{padding-left:1.4rem}
.subtopic{margin-left:1rem;border-left:3px solid #eee;padding-left:1rem}`

// HTML renders the bundle as a self-contained document. Long-form content is
// treated as markdown and converted; everything else is escaped text.
func HTML(r generator.GenerationResult) (string, error) {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(r.Outline.Title))
	fmt.Fprintf(&sb, "<style>%s</style>\n", pageStyle)
	sb.WriteString("</head>\n<body>\n")

	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(r.Outline.Title))
	sb.WriteString("<h2>Course Overview</h2>\n")
	for _, t := range r.Outline.Topics {
		fmt.Fprintf(&sb, "<h3>%s</h3>\n<ul>\n", html.EscapeString(t.Title))
		for _, s := range t.Subtopics {
			fmt.Fprintf(&sb, "<li>%s</li>\n", html.EscapeString(s))
		}
		sb.WriteString("</ul>\n")
	}

	if r.Diagram != "" {
		sb.WriteString("<h2>Visual Structure</h2>\n")
		fmt.Fprintf(&sb, "<pre>%s</pre>\n", html.EscapeString(r.Diagram))
	}

	if len(r.QuestionSet.Questions) > 0 {
		sb.WriteString("<h2>Interview Questions</h2>\n")
		for _, g := range r.QuestionSet.Questions {
			fmt.Fprintf(&sb, "<h3>%s</h3>\n<ol>\n", html.EscapeString(g.Subtopic))
			for _, q := range g.Questions {
				fmt.Fprintf(&sb, "<li>%s</li>\n", html.EscapeString(q))
			}
			sb.WriteString("</ol>\n")
		}
	}

	sb.WriteString("<h2>Detailed Content</h2>\n")
	for _, sec := range r.ContentBundle.Sections {
		fmt.Fprintf(&sb, "<h3>%s</h3>\n", html.EscapeString(sec.ChapterTitle))
		body, err := mdToHTML(sec.ChapterContent)
		if err != nil {
			return "", err
		}
		sb.WriteString(body)
		for _, sub := range sec.Subtopics {
			fmt.Fprintf(&sb, "<div class=\"subtopic\">\n<h4>%s</h4>\n", html.EscapeString(sub.Title))
			body, err := mdToHTML(sub.Content)
			if err != nil {
				return "", err
			}
			sb.WriteString(body)
			sb.WriteString("</div>\n")
		}
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
