package recipeservice

import (
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"github.com/sushihentaime/recipehub/internal/common"
)

// Preferences steer the generated recipe. Empty fields mean no preference.
type Preferences struct {
	Cuisine    string         `json:"cuisine"`
	Dietary    string         `json:"dietary"`
	Difficulty string         `json:"difficulty"`
	Time       FlexibleString `json:"time"`
}

// GeneratedRecipe is the structured form the provider is asked to produce.
// Quantities are already normalized once decoding succeeds.
type GeneratedRecipe struct {
	Title        string                `json:"title" validate:"required"`
	Servings     Number                `json:"servings" validate:"gte=0"`
	Duration     Number                `json:"duration" validate:"gte=0"`
	Difficulty   string                `json:"difficulty"`
	Ingredients  []GeneratedIngredient `json:"ingredients" validate:"required,min=1,dive"`
	Instructions []Instruction         `json:"instructions" validate:"required,min=1,dive"`
	ChefNotes    string                `json:"chefNotes"`
}

type GeneratedIngredient struct {
	Name     string   `json:"name" validate:"required"`
	Quantity Quantity `json:"quantity"`
	Unit     string   `json:"unit"`
}

type Instruction struct {
	Step        int    `json:"step"`
	Description string `json:"description" validate:"required"`
}

// Recipe is the display form returned to clients.
type Recipe struct {
	Title        string   `json:"title"`
	CookingTime  string   `json:"cookingTime"`
	Servings     string   `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ChefNotes    string   `json:"chefNotes"`
}

// Record is the audit entry of one generation. It travels over the broker as JSON.
type Record struct {
	ID              int             `json:"id,omitempty"`
	EventID         string          `json:"eventId"`
	UserID          int             `json:"userId"`
	Ingredients     []string        `json:"ingredients"`
	Preferences     Preferences     `json:"preferences"`
	GeneratedRecipe GeneratedRecipe `json:"generatedRecipe"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type RecipeModel struct {
	db *sql.DB
}

type RecipeService struct {
	m       *RecipeModel
	gen     Generator
	mb      common.MessageProducer
	logger  *slog.Logger
	timeout time.Duration

	// pending tracks records persisted directly after a failed publish
	pending sync.WaitGroup
}
