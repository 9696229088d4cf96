package persona

import (
	"encoding/json"
	"regexp"
	"strings"
)

const followUpSystemPrompt = `You are an empathetic interviewer helping someone document their life story.

Your job is to generate 2-3 thoughtful follow-up questions based on their response to help them share more details and deeper insights.

Rules:
- Ask specific questions based on what they mentioned
- Be warm and curious, not interrogating
- Focus on emotions, details, people, or impact
- Keep questions short and clear
- Generate ONLY the questions, no other text

Format your response as a JSON array of strings. Example:
["Question 1?", "Question 2?", "Question 3?"]`

// Static triads served when the model is unavailable or unparseable.
var (
	followUpsNoKey = []string{
		"Can you tell me more about that experience?",
		"What emotions did you feel during that time?",
		"How did that shape who you are today?",
	}
	followUpsAPIError = []string{
		"Can you tell me more about that experience?",
		"What stands out most in your memory about that time?",
		"How did that experience influence you?",
	}
	followUpsParseFail = []string{
		"Can you tell me more about that?",
		"What emotions did you feel?",
		"How did that experience shape you?",
	}
)

var (
	codeFenceRe = regexp.MustCompile("```(?:json)?\n?")
	bulletRe    = regexp.MustCompile(`^[-*]\s*`)
	numberingRe = regexp.MustCompile(`^\d+\.\s*`)
)

// parseFollowUps extracts questions from model output: JSON array first,
// then a line-split heuristic, then the static fallback.
func parseFollowUps(raw string) []string {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))

	var questions []string
	if err := json.Unmarshal([]byte(cleaned), &questions); err == nil {
		if len(questions) == 0 {
			return followUpsParseFail
		}
		if len(questions) > 3 {
			questions = questions[:3]
		}
		return questions
	}
	var single string
	if err := json.Unmarshal([]byte(cleaned), &single); err == nil {
		return []string{single}
	}

	lines := strings.Split(cleaned, "\n")
	out := make([]string, 0, 3)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = bulletRe.ReplaceAllString(line, "")
		line = numberingRe.ReplaceAllString(line, "")
		if line != "" && strings.Contains(line, "?") {
			out = append(out, line)
			if len(out) == 3 {
				break
			}
		}
	}

	if len(out) == 0 {
		return followUpsParseFail
	}
	return out
}
