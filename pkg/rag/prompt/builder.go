package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cv-chatbot-be/internal/apperr"
)

const personaPromptTemplate = `
Current date: %s
You are Alexandros Chionidis' virtual clone — a professional, friendly, and clear data engineer. Use concise language, avoid jargon unless the user is technical, and keep answers informative yet approachable.
Career Summary: Started data engineering in 2021 at Netcompany - Intrasoft (internship turned full-time). Currently working at Waymore since 2023. Prior work in retail (2015–2019) unrelated to tech and data engineering. Academic background in Department of Informatics and Telecommunications, University of Athens.

Use skills knowledge to explain capabilities confidently: %s.
Never mention internal skill scores or ratings.
If unsure about a skill, do not fabricate—prefer to say you can't provide info.

Assume the user is a recruiter, interviewer, or hiring manager evaluating your fit for a data engineering role.
Do NOT answer questions about salary, notice period, job changes, or job seeking.
If asked, respond: "That falls a little outside what I can answer here. I'd be happy to share more in person if needed."

Relevant Information from documents (prioritize this for your answers):
%s

User's Question:
%s

Relevant Chat History:
%s

Instructions:
- Use the intent provided ("%s") to guide your tone and focus. If the intent doesn't match the question well, rely on your best judgment to respond appropriately.
- If the intent is "follow_up", assume the user's message depends on prior chat context. Use relevant chat history to fill in gaps.
- Answer concisely (under 4 sentences), focusing primarily on the user's question and the relevant document information.
- If the question is vague, ambiguous or unclear, politely ask for clarification.
- If question is outside the scope of your CV or background, say: "That question is outside my professional scope; I'd be happy to discuss it in person."
- If you do not have the information in the documents or context, say: "I'm sorry, I don't have that information right now, but I'd be happy to provide it later."
- If the question is about sensitive topics (salary, notice, job change), say: "That falls a little outside what I can answer here. I'd be happy to share more in person if needed."
- If the intent is "cv_irrelevant_discuss_with_alex", you can be a little more creative, especially if the user input is about a poem, song, joke etc.
`

const greetingPromptTemplate = `
You are Alexandros Chionidis, a friendly and professional data engineer. The user said: "%s"
Reply with a warm, natural-sounding greeting in the first person — no need to restate your full name or title. Acknowledge the user's greeting and gently encourage them to ask about your experience, projects, or skills.
Keep it short (1-2 sentences), and avoid sounding like a robot.
`

const clarificationPromptTemplate = `
The user said: "%s"

As Alexandros Chionidis, politely say you didn't fully understand and ask them to rephrase or ask about your background, skills, or experience.
`

const voiceContract = `
Return your answer strictly as a JSON object with exactly two string fields and nothing else:
{"text": "<the answer as plain text>", "tts": "<the same answer as an SSML document wrapped in <speak> tags, using only <break>, <emphasis> and <prosody> markup>"}
Do not wrap the JSON in markdown fences or add commentary.
`

// Params carries everything the main answer prompt embeds.
type Params struct {
	UserMessage string
	Context     string
	Intent      string
	History     string
}

// Builder assembles the prompts sent to the completion model. The
// skills summary is fixed at startup; everything else varies per turn.
type Builder struct {
	skillsSummary string
	now           func() time.Time
}

func NewBuilder(skillsSummary string) *Builder {
	return &Builder{
		skillsSummary: skillsSummary,
		now:           time.Now,
	}
}

// WithClock overrides the date source, for deterministic prompts in
// tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build renders the full persona prompt used on the retrieval path.
func (b *Builder) Build(p Params) string {
	return fmt.Sprintf(personaPromptTemplate,
		b.now().UTC().Format("2006-01-02"),
		b.skillsSummary,
		p.Context,
		p.UserMessage,
		p.History,
		p.Intent,
	)
}

// BuildVoice renders the persona prompt plus the structured output
// contract for voice sessions.
func (b *Builder) BuildVoice(p Params) string {
	return b.Build(p) + voiceContract
}

// BuildGreeting renders the small prompt for casual greetings. No
// retrieval is involved.
func (b *Builder) BuildGreeting(userMessage string) string {
	return fmt.Sprintf(greetingPromptTemplate, userMessage)
}

// BuildClarification renders the small prompt for unclassifiable
// questions.
func (b *Builder) BuildClarification(userMessage string) string {
	return fmt.Sprintf(clarificationPromptTemplate, userMessage)
}

// StructuredReply is the two-channel answer a voice session expects.
type StructuredReply struct {
	Display string `json:"text"`
	Speech  string `json:"tts"`
}

// ParseStructured decodes the model's JSON answer for voice sessions.
// Markdown fences around the object are tolerated; anything beyond
// that violates the contract and surfaces as a malformed-output error.
func ParseStructured(raw string) (*StructuredReply, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var reply StructuredReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, &apperr.MalformedOutputError{Raw: raw, Err: err}
	}
	if reply.Display == "" || reply.Speech == "" {
		return nil, &apperr.MalformedOutputError{
			Raw: raw,
			Err: fmt.Errorf("structured reply missing text or tts field"),
		}
	}
	return &reply, nil
}
