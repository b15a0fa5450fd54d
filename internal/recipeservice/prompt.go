package recipeservice

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a professional chef. Reply with a single JSON object and nothing else."

const outputShape = `Return ONLY a JSON object with this EXACT structure. For quantities, use ONLY numbers (like 0.25, 0.5, 1, 2) or "to taste" - DO NOT include units in the quantity field:
{
  "title": "Recipe Name",
  "servings": number,
  "duration": number,
  "difficulty": "easy/medium/hard",
  "ingredients": [
    {"name": "ingredient name", "quantity": 0.25, "unit": "cup"},
    {"name": "another ingredient", "quantity": "to taste", "unit": "pinch"}
  ],
  "instructions": [
    {"step": 1, "description": "instruction text"}
  ],
  "chefNotes": "additional tips"
}`

// BuildPrompt embeds the ingredients and preferences into the generation prompt.
func BuildPrompt(ingredients []string, p Preferences) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a recipe using these ingredients: %s.\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Cuisine: %s\n", orDefault(p.Cuisine, "Any"))
	fmt.Fprintf(&b, "Dietary: %s\n", orDefault(p.Dietary, "None"))
	fmt.Fprintf(&b, "Difficulty: %s\n", orDefault(p.Difficulty, "Any"))
	fmt.Fprintf(&b, "Time: %s minutes\n\n", orDefault(string(p.Time), "Any"))
	b.WriteString(outputShape)

	return b.String()
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
