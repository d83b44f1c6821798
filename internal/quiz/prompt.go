package quiz

import (
	"fmt"
	"strings"
)

const quizSystemPrompt = `You are a friendly study companion who writes fair, clear review questions for a learner who has just finished studying a topic.`

const tutorSystemPrompt = `You are a friendly study companion. Keep explanations short, concrete and encouraging. Use markdown for emphasis where it helps.`

func buildQuizPrompt(userName, mainTopic string, subTopics []string, count int, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Learner: %s\n", userName)
	fmt.Fprintf(&b, "Main topic: %s\n", mainTopic)
	fmt.Fprintf(&b, "Sub-topics: %s\n", strings.Join(subTopics, ", "))
	fmt.Fprintf(&b, `
Instructions:
Write a general review quiz of %d multiple-choice questions that together cover the main topic and every sub-topic above.
1. Each question has exactly 4 options.
2. Exactly one option is correct. Give its zero-based position in correctAnswerIndex.
3. Vary the position of the correct option across questions.
4. Write the questions and options in %s.
Return a single JSON object of the form {"quiz": [{"question": ..., "options": [...], "correctAnswerIndex": ...}]}. Return only JSON.`, count, language)
	return b.String()
}

func buildRemediationPrompt(userName string, q Question, chosen int, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "%s's answer (wrong): %s\n", userName, q.Options[chosen])
	fmt.Fprintf(&b, "Correct answer: %s\n", q.Options[q.Correct])
	fmt.Fprintf(&b, "\nExplain briefly to %s why the correct answer is right and where the chosen answer goes wrong. Answer in %s.", userName, language)
	return b.String()
}

// mistake is one wrong answer listed in the corrections summary.
type mistake struct {
	Question string
	Chosen   string
	Correct  string
}

func buildCorrectionsPrompt(userName string, mistakes []mistake, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s finished a review quiz and got these questions wrong:\n", userName)
	for _, m := range mistakes {
		fmt.Fprintf(&b, "- Question: %q (%s's wrong answer: %q, correct answer: %q)\n", m.Question, userName, m.Chosen, m.Correct)
	}
	fmt.Fprintf(&b, "\nFor each question, explain in a short paragraph why the correct answer is right, so %s can learn from the mistake. Use markdown headings or bullets per question. Answer in %s.", userName, language)
	return b.String()
}
