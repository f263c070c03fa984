package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	MessageTypeInput    = "input"
	MessageTypeResponse = "response"

	// Hard caps applied before storage and classification
	MaxUserMessageLength = 2000
	MaxPromptLogLength   = 5000
	MaxContextLogLength  = 5000

	// Retrieval
	SnippetTopK          = 3
	SearchCandidateLimit = 10

	// Source-weighting factors
	LanguageFluencySource  = "Language Fluency"
	LanguageFluencyPenalty = 0.3
	IntentMatchBoost       = 1.5

	// History windows (conversation turns)
	HistoryWindowDefault  = 2
	HistoryWindowFollowUp = 4

	// Temperature policy
	TemperatureDefault  = 0.0
	TemperatureCreative = 0.7
)

// Intent labels form a closed set. Anything the classifier returns
// outside this set is normalized to IntentUnknown before routing.
const (
	IntentGeneralBackground = "general_background"
	IntentSkillsOrTools     = "skills_or_tools"
	IntentCertifications    = "certifications"
	IntentExperience        = "experience"
	IntentCasualGreeting    = "casual_greeting"
	IntentCvIrrelevant      = "cv_irrelevant_discuss_with_alex"
	IntentUnknown           = "unknown"
	IntentFarewell          = "farewell"
	IntentFollowUp          = "follow_up"
	IntentJobDescription    = "job_description"
)

// KnownIntents indexes the closed set for normalization.
var KnownIntents = map[string]bool{
	IntentGeneralBackground: true,
	IntentSkillsOrTools:     true,
	IntentCertifications:    true,
	IntentExperience:        true,
	IntentCasualGreeting:    true,
	IntentCvIrrelevant:      true,
	IntentUnknown:           true,
	IntentFarewell:          true,
	IntentFollowUp:          true,
	IntentJobDescription:    true,
}

// Completion model identifiers exposed by the settings UI.
// They are opaque strings passed through to the warehouse.
var AvailableModels = []string{
	"mistral-large",
	"reka-flash",
	"llama2-70b-chat",
	"gemma-7b",
	"mixtral-8x7b",
	"mistral-7b",
}

const DefaultModel = "mistral-large"

// Embedding dimensions supported by the snippet store. Each maps to a
// dedicated vector column and embedding model.
const (
	EmbeddingDim768  = "768"
	EmbeddingDim1024 = "1024"

	DefaultEmbeddingDim = EmbeddingDim1024
)

// Fixed user-facing sentences. These are contract text, not prompts:
// tests assert them verbatim.
const (
	InitialAssistantMessage = "Hi! I'm Alexandros Chionidis' virtual clone. " +
		"Feel free to ask me anything about my background, skills, or experience."

	FarewellMessage = "Thank you for your time! I'm wrapping up the session now. " +
		"If you have more questions about my background or skills later, feel free to return anytime."

	ServiceUnavailableMessage = "The chatbot is temporarily unavailable due to high traffic or maintenance. " +
		"Please try again shortly."

	SalaryDeflectionSentence = "That falls a little outside what I can answer here. " +
		"I'd be happy to share more in person if needed."

	OutOfScopeSentence = "That question is outside my professional scope; " +
		"I'd be happy to discuss it in person."

	NoInformationSentence = "I'm sorry, I don't have that information right now, " +
		"but I'd be happy to provide it later."
)
