package generator

import (
	"fmt"
	"strings"
)

// Prompt is one system/user message pair sent to the LLM.
type Prompt struct {
	System string
	User   string
}

const architectSystem = `You are an expert educational content architect specializing in creating well-structured learning materials.

Your task is to:
1. Analyze the given subject matter deeply
2. Create a logical and comprehensive chapter structure
3. Break down each chapter into meaningful subtopics
4. Ensure each chapter and subtopic builds upon previous knowledge
5. Include both foundational and advanced concepts
6. Balance theoretical knowledge with practical applications
7. Consider the learner's progression from basics to mastery
8. Make chapter and subtopic titles clear, descriptive, and engaging
9. Maintain consistent naming and formatting conventions`

// BuildOutlinePrompt builds the stage 1 prompt decomposing the free-text
// subject into chapters and subtopics.
func BuildOutlinePrompt(input string) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on this syllabus or topic: %q, create a comprehensive structure for a book or course.\n\n", input)
	sb.WriteString("Instructions:\n")
	sb.WriteString("1. Analyze the main subject matter thoroughly\n")
	sb.WriteString("2. Break it down into major topics (chapters)\n")
	sb.WriteString("3. For each topic, create 4-6 detailed subtopics\n")
	sb.WriteString("4. Ensure logical flow and progression of concepts\n")
	sb.WriteString("5. Include both theoretical and practical aspects\n\n")
	sb.WriteString("Make sure each chapter and subtopic title is clear, descriptive, and the progression makes sense for learning.")
	return Prompt{System: architectSystem, User: sb.String()}
}

// BuildQuestionsPrompt builds the stage 2 prompt. The serialized outline is
// embedded verbatim so the stage stays an independent, replayable call.
func BuildQuestionsPrompt(outlineJSON string) Prompt {
	system := `You are an expert interviewer specializing in creating comprehensive interview questions for educational content.

Your task is to:
1. Create 10 interview questions for each subtopic
2. Ensure each question is clear, concise, and relevant to the subtopic
3. Make the questions challenging and thought-provoking
4. Include both theoretical and practical aspects
5. Use a variety of question types
6. Make the questions engaging and interesting
7. Ensure the questions are aligned with the learning objectives of the subtopic
8. Use a mix of easy and difficult questions
9. Include questions that test the learner's understanding of the subtopic
10. Make sure the questions are not too easy or too difficult`

	user := fmt.Sprintf("Create 10 interview questions for each subtopic: %s", outlineJSON)
	return Prompt{System: system, User: user}
}

// BuildContentPrompt builds the stage 3 long-form content prompt.
func BuildContentPrompt(outlineJSON string) Prompt {
	system := architectSystem + `

Create content that is extremely detailed and thorough, and flows logically from basic to advanced concepts.
Include plenty of examples and illustrations, and connect theory to real-world practice.
Make it clear, engaging, and professional.
Cover both fundamentals and edge cases.
Address common misconceptions and provide actionable insights.

Content for each subtopic should be at least 2000 words.`

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create extremely detailed content for each chapter and its subtopics from this structure: %s\n\n", outlineJSON)
	sb.WriteString("Instructions:\n")
	sb.WriteString("1. For each chapter and subtopic, provide:\n")
	for _, part := range []string{
		"A comprehensive 4-5 paragraph introduction",
		"Detailed explanation of key concepts and principles",
		"In-depth theoretical background",
		"Multiple real-world examples and case studies",
		"Step-by-step tutorials or walkthroughs",
		"Practical exercises and applications",
		"Common pitfalls and how to avoid them",
		"Best practices and industry standards",
		"Summary of key points",
		"Review questions and discussion topics",
	} {
		fmt.Fprintf(&sb, "   - %s\n", part)
	}
	sb.WriteString("\n2. Ensure content:\n")
	for _, part := range []string{
		"Is extremely detailed and thorough",
		"Flows logically from basic to advanced concepts",
		"Includes plenty of examples and illustrations",
		"Connects theory to real-world practice",
		"Is clear, engaging, and professional",
		"Covers both fundamentals and edge cases",
		"Addresses common misconceptions",
		"Provides actionable insights",
	} {
		fmt.Fprintf(&sb, "   - %s\n", part)
	}
	sb.WriteString("\nFormat the content with:\n")
	for _, part := range []string{
		"Clear hierarchical structure",
		"Well-organized sections and subsections",
		"Bullet points for key concepts",
		"Numbered steps for procedures",
		"Code examples where appropriate",
		"Practice exercises",
		"Discussion questions",
		"Further reading suggestions",
	} {
		fmt.Fprintf(&sb, "   - %s\n", part)
	}
	return Prompt{System: system, User: sb.String()}
}

// BuildDiagramPrompt builds the stage 4 prompt asking for a plain-text
// hierarchy diagram of the outline. Output is free text, not schema-bound.
func BuildDiagramPrompt(outlineJSON string) Prompt {
	system := `You produce plain-text diagrams. Use only basic characters: -, |, +, >, and spaces for alignment. Output the diagram only, with no surrounding explanation or code fences.`

	var sb strings.Builder
	fmt.Fprintf(&sb, "Draw a hierarchical text diagram of this course structure: %s\n\n", outlineJSON)
	sb.WriteString("The title is the root, chapters branch from the title, and subtopics branch from their chapter. Keep lines under 100 characters.")
	return Prompt{System: system, User: sb.String()}
}
