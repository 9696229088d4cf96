package prompts

import (
	"log/slog"

	"github.com/forever-stories/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seedPrompt struct {
	Question string
	Category string
	Type     string
}

// Prompt types.
const (
	typeNostalgic   = "nostalgic"
	typeReflective  = "reflective"
	typeDescriptive = "descriptive"
	typeLegacy      = "legacy"
)

var catalogPrompts = []seedPrompt{
	{Question: "What is your earliest memory of growing up in {location}?", Category: "childhood", Type: typeNostalgic},
	{Question: "What did a typical summer day look like when you were a kid?", Category: "childhood", Type: typeDescriptive},
	{Question: "Who was your best friend growing up, and what kind of trouble did you get into together?", Category: "friendship", Type: typeNostalgic},
	{Question: "What was your first job, and what did it teach you?", Category: "career", Type: typeReflective},
	{Question: "Tell me about the house you grew up in. Which room do you remember best?", Category: "childhood", Type: typeDescriptive},
	{Question: "How did you meet your closest lifelong friend?", Category: "friendship", Type: typeNostalgic},
	{Question: "What was the hardest decision you ever made in your working life?", Category: "career", Type: typeReflective},
	{Question: "Describe a family tradition you hope gets carried on after you.", Category: "traditions", Type: typeLegacy},
	{Question: "What was your wedding day like, or the day you knew you'd found your person?", Category: "love", Type: typeNostalgic},
	{Question: "What dish reminds you most of your mother's or father's cooking?", Category: "traditions", Type: typeDescriptive},
	{Question: "What is the farthest from {location} you have ever traveled, and what took you there?", Category: "travel", Type: typeNostalgic},
	{Question: "Tell me about a trip that didn't go as planned but became a great story.", Category: "travel", Type: typeNostalgic},
	{Question: "What did your parents do for a living, and how did it shape your own path?", Category: "family", Type: typeReflective},
	{Question: "Who in your family are you most like, and why?", Category: "family", Type: typeReflective},
	{Question: "What advice would you give your twenty-year-old self?", Category: "milestones", Type: typeLegacy},
	{Question: "What accomplishment are you most proud of?", Category: "milestones", Type: typeReflective},
	{Question: "What hobby or pastime has brought you the most joy over the years?", Category: "hobbies", Type: typeDescriptive},
	{Question: "Is there a skill or craft you learned from an older relative?", Category: "hobbies", Type: typeLegacy},
	{Question: "Tell me about a teacher or mentor who changed the direction of your life.", Category: "milestones", Type: typeReflective},
	{Question: "What song or piece of music takes you straight back to a particular moment?", Category: "general", Type: typeNostalgic},
	{Question: "What was the world event you remember most vividly, and where were you when it happened?", Category: "general", Type: typeNostalgic},
	{Question: "How did you celebrate holidays when your children were young?", Category: "traditions", Type: typeNostalgic},
	{Question: "What do you want your grandchildren to know about how you grew up?", Category: "legacy", Type: typeLegacy},
	{Question: "What belief or value have you held onto your entire life?", Category: "legacy", Type: typeLegacy},
	{Question: "Describe your first car and where it took you.", Category: "milestones", Type: typeDescriptive},
	{Question: "Tell me about a time you took a real risk. Was it worth it?", Category: "milestones", Type: typeReflective},
	{Question: "What was dating like when you were young?", Category: "love", Type: typeNostalgic},
	{Question: "What small everyday moment from your life would you relive if you could?", Category: "general", Type: typeNostalgic},
}

// SeedCatalog inserts any catalog prompts not already present. The catalog
// is reference data; the API never writes it.
func SeedCatalog(db *gorm.DB) error {
	seeded := 0

	for _, sp := range catalogPrompts {
		var existing models.Prompt
		err := db.Where("text = ?", sp.Question).First(&existing).Error
		if err == nil {
			continue
		}

		prompt := models.Prompt{
			ID:       uuid.New(),
			Text:     sp.Question,
			Category: sp.Category,
			Type:     sp.Type,
		}

		if err := db.Create(&prompt).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		slog.Info("seeded prompt catalog", "new", seeded, "total", len(catalogPrompts))
	}
	return nil
}
