package recipeservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	fenceRX  = regexp.MustCompile("```(?:json)?")
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// RecipeParseError reports provider output that is not a usable recipe.
type RecipeParseError struct {
	Raw string
	Err error
}

func (e *RecipeParseError) Error() string {
	return fmt.Sprintf("failed to parse recipe data: %v", e.Err)
}

func (e *RecipeParseError) Unwrap() error {
	return e.Err
}

// UnmarshalJSON accepts {"step": 1, "description": "..."} or a bare string.
func (in *Instruction) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*in = Instruction{Description: strings.TrimSpace(s)}
		return nil
	}

	var raw struct {
		Step        Number `json:"step"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*in = Instruction{Step: int(raw.Step), Description: strings.TrimSpace(raw.Description)}
	return nil
}

// ParseRecipe decodes provider text into a GeneratedRecipe and validates its structure.
func ParseRecipe(text string) (*GeneratedRecipe, error) {
	cleaned := strings.TrimSpace(fenceRX.ReplaceAllString(text, ""))

	// some models wrap the object in prose
	if !strings.HasPrefix(cleaned, "{") {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start == -1 || end < start {
			return nil, &RecipeParseError{Raw: text, Err: fmt.Errorf("no JSON object in response")}
		}
		cleaned = cleaned[start : end+1]
	}

	var r GeneratedRecipe
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, &RecipeParseError{Raw: text, Err: err}
	}

	if err := validate.Struct(r); err != nil {
		return nil, &RecipeParseError{Raw: text, Err: err}
	}

	for i := range r.Instructions {
		if r.Instructions[i].Step == 0 {
			r.Instructions[i].Step = i + 1
		}
	}

	return &r, nil
}

// Transform renders a parsed recipe for display.
func Transform(r *GeneratedRecipe) *Recipe {
	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		parts := make([]string, 0, 3)
		for _, p := range []string{ing.Quantity.Format(), strings.TrimSpace(ing.Unit), strings.TrimSpace(ing.Name)} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		ingredients = append(ingredients, strings.Join(parts, " "))
	}

	instructions := make([]string, 0, len(r.Instructions))
	for _, in := range r.Instructions {
		instructions = append(instructions, in.Description)
	}

	return &Recipe{
		Title:        r.Title,
		CookingTime:  r.Duration.String() + " minutes",
		Servings:     r.Servings.String() + " servings",
		Difficulty:   r.Difficulty,
		Ingredients:  ingredients,
		Instructions: instructions,
		ChefNotes:    r.ChefNotes,
	}
}
