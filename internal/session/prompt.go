package session

import (
	"fmt"
	"strings"
)

// persona names both sides of the conversation in every prompt.
type persona struct {
	Assistant string
	User      string
	Language  string
}

func (p persona) system() string {
	return fmt.Sprintf(`You are %s, a friendly AI study companion helping %s learn. Be warm, clear and concise, and always answer in %s.`, p.Assistant, p.User, p.Language)
}

func buildPlanPrompt(p persona, topic string) string {
	return fmt.Sprintf(`%s wants to learn about "%s".

Instructions:
Create a short, focused study plan for this topic.
1. Split the topic into 5 to 7 core sub-topics.
2. Order them so each builds on the previous one.
3. Keep each sub-topic title short (2-6 words).
4. Write the titles in %s.
Return a single JSON object of the form {"plan": [...]}. Return only JSON.`, p.User, topic, p.Language)
}

func buildExplanationPrompt(p persona, mainTopic, subTopic string) string {
	return fmt.Sprintf(`Explain the concept "%s" from the general topic "%s" to %s.

Instructions:
1. Make it clear, short and precise enough for a beginner.
2. Use markdown: **bold** or *italic* for emphasis, bullet points for lists, and paragraphs for readability.
3. Also write an image prompt that visualizes the concept: minimalist, symbolic and artistic, with no text, letters or numbers.
4. Write the explanation in %s. The image prompt may be in English.
Return a single JSON object with two keys, "explanation" and "imagePrompt". Return only JSON.`, subTopic, mainTopic, p.User, p.Language)
}

func buildQuestionPrompt(p persona, mainTopic, lastReply, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "We are studying the general topic %q.\n", mainTopic)
	if lastReply != "" {
		fmt.Fprintf(&b, "My last reply in the conversation was: %q. Read the new message in that context.\n", lastReply)
	} else {
		b.WriteString("This is the start of the conversation.\n")
	}
	fmt.Fprintf(&b, "%s's message: %q\n", p.User, question)
	fmt.Fprintf(&b, "\nReply helpfully and warmly. Use markdown where it helps. Answer in %s.", p.Language)
	return b.String()
}

func deeperInstruction(p persona, kind DeeperKind) string {
	switch kind {
	case Summarize:
		return fmt.Sprintf("Summarize the previous reply for %s.", p.User)
	case Analogy:
		return fmt.Sprintf("Explain the previous reply again for %s using a simple analogy.", p.User)
	case Example:
		return "Give a concrete real-life example related to the previous reply."
	}
	return ""
}

func buildDeeperPrompt(p persona, mainTopic, subTopic, original string, kind DeeperKind) string {
	var b strings.Builder
	if subTopic != "" {
		fmt.Fprintf(&b, "%s is studying the sub-topic %q within the general topic %q.\n", p.User, subTopic, mainTopic)
	} else {
		fmt.Fprintf(&b, "%s is chatting about the general topic %q and just received this reply.\n", p.User, mainTopic)
	}
	fmt.Fprintf(&b, "Original text: %q\n", original)
	fmt.Fprintf(&b, "Request: %q\n", deeperInstruction(p, kind))
	fmt.Fprintf(&b, "\nAnswer the request based on the original text, but in a fresh and original way. Use markdown. Answer in %s.", p.Language)
	return b.String()
}

func buildChallengePrompt(p persona, subTopic string) string {
	return fmt.Sprintf(`Ask %s one short, clear question that tests their knowledge of "%s", a topic they studied earlier. Reply with the question only and nothing else. Write it in %s.`, p.User, subTopic, p.Language)
}
