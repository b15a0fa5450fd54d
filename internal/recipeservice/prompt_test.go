package recipeservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := BuildPrompt([]string{"eggs", "tomato"}, Preferences{})

		assert.Contains(t, p, "Create a recipe using these ingredients: eggs, tomato.")
		assert.Contains(t, p, "Cuisine: Any\n")
		assert.Contains(t, p, "Dietary: None\n")
		assert.Contains(t, p, "Difficulty: Any\n")
		assert.Contains(t, p, "Time: Any minutes\n")
		assert.Contains(t, p, `"quantity": "to taste"`)
	})

	t.Run("preferences", func(t *testing.T) {
		p := BuildPrompt([]string{"rice"}, Preferences{
			Cuisine:    "Japanese",
			Dietary:    "vegan",
			Difficulty: "easy",
			Time:       "20",
		})

		assert.Contains(t, p, "these ingredients: rice.")
		assert.Contains(t, p, "Cuisine: Japanese\n")
		assert.Contains(t, p, "Dietary: vegan\n")
		assert.Contains(t, p, "Difficulty: easy\n")
		assert.Contains(t, p, "Time: 20 minutes\n")
	})
}
