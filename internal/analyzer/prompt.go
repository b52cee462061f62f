package analyzer

const analysisInstructions = `Analyze the following video transcript for a high ticket digital item sale for flaws in the sales process. The purpose of the seller here is to move the prospect through the Key stages/Beliefs to help them make a sales decision:
	Pain – Clarify their main problem.
	Doubt – Why they haven't solved it on their own.
	Cost – The hidden cost of staying stuck.
	Desire – Their ultimate desired outcome.
	Support – Assurance they'll get necessary help.
	Handle Partner Indecision: Ask if they have support of their partners or parents so that the prospect can't leave the call at the end saying they need to consult them and get back without making a commitment on the call itself.
	Trust – Confidence in you and your solution.
Provide a concise summary, identify the main topics discussed, and list any key action items or conclusions. Try to infer the roles of the prospect and the salesperson and give actionable feedback with specific parts and what did the seller miss or could improve during the conversation.`

// BuildPrompt joins the fixed instructions with a labelled transcript section.
func BuildPrompt(transcript string) string {
	return analysisInstructions + "\n\nTranscript:\n" + transcript
}
