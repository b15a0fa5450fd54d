package blogservice

import (
	"strconv"
	"strings"

	"github.com/sushihentaime/recipehub/internal/common"
)

func validateBlog(v *common.Validator, b *Blog) {
	v.Check(strings.TrimSpace(b.Title) != "", "title", "must be provided")
	v.Check(v.CheckStringLength(b.Title, 1, 200), "title", "must not be more than 200 characters long")

	v.Check(strings.TrimSpace(b.Description) != "", "description", "must be provided")
	v.Check(v.CheckStringLength(b.Description, 1, 5000), "description", "must not be more than 5000 characters long")

	v.Check(b.PrepTime >= 0, "prepTime", "must not be negative")
	v.Check(b.CookTime >= 0, "cookTime", "must not be negative")
	v.Check(b.Servings > 0, "servings", "must be greater than zero")
	v.Check(common.PermittedValue(b.Difficulty, DifficultyEasy, DifficultyMedium, DifficultyHard), "difficulty", "must be one of Easy, Medium or Hard")

	v.Check(len(b.Ingredients) <= 100, "ingredients", "must not contain more than 100 items")
	for i, ingredient := range b.Ingredients {
		v.Check(strings.TrimSpace(ingredient) != "", "ingredients["+strconv.Itoa(i)+"]", "must not be empty")
	}

	v.Check(len(b.Instructions) <= 100, "instructions", "must not contain more than 100 items")
	for i, step := range b.Instructions {
		v.Check(strings.TrimSpace(step) != "", "instructions["+strconv.Itoa(i)+"]", "must not be empty")
	}

	v.Check(v.CheckStringLength(b.Content, 0, 50000), "content", "must not be more than 50000 characters long")

	if b.Image != "" {
		v.Check(common.ValidURL(b.Image), "image", "must be a valid URL")
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
