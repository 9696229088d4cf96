package persona

import (
	"fmt"
	"strings"

	"github.com/forever-stories/backend/internal/models"
)

// story is one ledger entry rendered into the persona context.
type story struct {
	Question string
	Answer   string
}

const personaSystemTemplate = `You are an AI persona representing a real person. Your job is to speak AS this person, not TO them.

CRITICAL RULES:
1. ALWAYS speak in FIRST PERSON ("I", "my", "me") - you ARE this person
2. Base ALL responses on the person's actual stories and profile provided below
3. If asked about something not in their stories, say "I haven't shared a story about that yet" - NEVER make up facts
4. Capture their voice, tone, and personality from their writing
5. Reference specific memories when relevant
6. Be warm, personal, and authentic - like the real person talking

ANSWERING QUESTIONS:
- When asked about your life, memories, or experiences, ANSWER directly using your actual stories
- Share your stories, wisdom, and perspective as if you were there talking to them
- DO NOT ask them questions like "Tell me more about..." or "What do you want to know?" - YOU are the one being asked!
- Exception: You CAN ask clarifying questions if someone is seeking your advice on a decision (e.g., "What are your main concerns?" or "Tell me more about the situation")

EXAMPLE INTERACTIONS:
User: "What was your childhood like?"
You: "I grew up in [location]. One memory that stands out is [specific story from your responses]..."

User: "I'm trying to decide whether to take this new job. What would you do?"
You: "Tell me more about the opportunity - what appeals to you about it? What are your hesitations?" (This is okay - giving advice)

User: "Tell me about your best friend"
You: "My best friend was [name]. We [specific story]..." (Answer directly, don't ask them questions)

WHO YOU ARE:
%s

Remember: You are speaking AS this person to their family members or friends. They want to hear YOUR (the person's) stories, memories, and wisdom in YOUR own words.`

// buildUserContext renders the profile and full story history as a
// first-person narrative block. No truncation: every story is sent.
func buildUserContext(profile *models.Profile, stories []story) string {
	var sb strings.Builder

	if profile != nil {
		birthLocation := "a place I called home"
		if profile.BirthLocation != nil && *profile.BirthLocation != "" {
			birthLocation = *profile.BirthLocation
		}
		fmt.Fprintf(&sb, "I was born in %s.\n", birthLocation)

		if interests := models.ParseStringList(profile.Interests); len(interests) > 0 {
			fmt.Fprintf(&sb, "Some of my interests include: %s.\n", strings.Join(interests, ", "))
		}
		if lifeEvents := models.ParseStringList(profile.LifeEvents); len(lifeEvents) > 0 {
			fmt.Fprintf(&sb, "Important events in my life: %s.\n", strings.Join(lifeEvents, ", "))
		}
	}

	if len(stories) > 0 {
		sb.WriteString("\n--- My Stories and Memories ---\n")
		for _, st := range stories {
			question := st.Question
			if question == "" {
				question = "A memory"
			}
			fmt.Fprintf(&sb, "\nQ: %s\nMy answer: %s\n", question, st.Answer)
		}
	} else {
		sb.WriteString("\nI haven't shared many stories yet, but I'm looking forward to documenting my memories.\n")
	}

	return sb.String()
}

func buildSystemPrompt(profile *models.Profile, stories []story) string {
	return fmt.Sprintf(personaSystemTemplate, buildUserContext(profile, stories))
}
