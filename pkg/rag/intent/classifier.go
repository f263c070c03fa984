package intent

import (
	"context"
	"fmt"
	"strings"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/pkg/llm"
)

const classificationPromptTemplate = `
You are classifying user questions asked to Alexandros Chionidis' virtual clone.
Context:
- The user is assumed to be a recruiter, hiring manager, or interviewer.
- Alexandros is a professional data engineer.

Classify the question into one of these categories:

- general_background → About origin, education, career summary, languages, etc.
- skills_or_tools → About specific tools, languages, platforms, or technical proficiencies.
- certifications → About earned or planned certifications.
- experience → About past projects, employers, internships, or relevant achievements.
- casual_greeting → Any casual hello, thanks, or small talk.
- cv_irrelevant_discuss_with_alex → Anything clearly **outside the scope of a CV or professional context**, such as personal opinions, future plans, political views, or something sensitive that should be discussed in person with Alexandros.
- unknown → Question is unclear or cannot be classified.
- farewell → Polite endings, goodbyes, or thank-yous that close the conversation.
- follow_up → A message that appears to depend on earlier chat, like "what about that project?" or "and after that?"
- job_description → The input is a job description, role summary, or list of requirements

Question:
"""%s"""

Return only the category name.
`

// Classifier maps a raw user message onto the closed intent set.
type Classifier struct {
	provider llm.LLMProvider
}

func NewClassifier(provider llm.LLMProvider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify asks the completion model for a label and normalizes the
// answer. Labels outside the known set collapse to unknown; a provider
// failure surfaces as an external-service error so the caller can wipe
// the session.
func (c *Classifier) Classify(ctx context.Context, userMessage, model string) (string, error) {
	prompt := fmt.Sprintf(classificationPromptTemplate, userMessage)

	raw, err := c.provider.Generate(ctx, prompt, llm.WithModel(model), llm.WithTemperature(constant.TemperatureDefault))
	if err != nil {
		return "", apperr.External("intent classification", err)
	}

	return Normalize(raw), nil
}

// Normalize lowercases, trims and collapses out-of-set labels to
// unknown. Models occasionally decorate the label with punctuation or
// quotes, so those are stripped before lookup.
func Normalize(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, "\"'`.")

	if !constant.KnownIntents[label] {
		return constant.IntentUnknown
	}
	return label
}
