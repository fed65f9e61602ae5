package responder

// Fixed texts returned to callers.
const (
	// ClosingPrompt is appended to every answer built from retrieved context.
	ClosingPrompt = "Is there anything specific about this you'd like me to explain further?"

	// OnboardingMessage answers queries asking for help or how to start.
	OnboardingMessage = "I'm here to help you learn Git! You can ask me about:\n\n" +
		"- Basic concepts (repository, commit, branch)\n" +
		"- Common commands (add, commit, push, pull)\n" +
		"- Workflows (branching, merging)\n" +
		"- Best practices\n\n" +
		"What would you like to learn about?"

	// ThanksMessage answers queries expressing thanks.
	ThanksMessage = "You're welcome! Feel free to ask if you have more questions about Git. I'm here to help!"

	// NoInformationMessage answers queries that match nothing.
	NoInformationMessage = "I understand you're asking about Git, but I don't have specific information " +
		"about that topic in my knowledge base. Could you rephrase your question or ask about basic " +
		"Git concepts like commits, branches, or repositories?"

	// ApologyMessage is shown in place of a response that could not be produced.
	ApologyMessage = "I'm sorry, I encountered an error processing your question. Please try again."
)

// paragraphSeparator joins passages and the closing prompt.
const paragraphSeparator = "\n\n"

// maxComposedItems is how many retrieved passages an answer quotes.
const maxComposedItems = 2
