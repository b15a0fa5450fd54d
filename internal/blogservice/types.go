package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/recipehub/internal/common"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// SortSafelist maps the sort keys clients may send to blog columns.
var SortSafelist = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"likes":     "likes_count",
}

type Blog struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	PrepTime     int        `json:"prepTime"`
	CookTime     int        `json:"cookTime"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	// Content is an optional body stored in Markdown format.
	Content    string        `json:"content"`
	Image      string        `json:"image"`
	Author     common.Author `json:"author"`
	LikesCount int           `json:"likesCount"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	Version    int           `json:"-"`
}

func (b *Blog) OwnerID() int {
	return b.Author.ID
}

// BlogInput is the client-editable part of a blog. On update, nil fields keep their value.
type BlogInput struct {
	Title        *string     `json:"title"`
	Description  *string     `json:"description"`
	PrepTime     *int        `json:"prepTime"`
	CookTime     *int        `json:"cookTime"`
	Servings     *int        `json:"servings"`
	Difficulty   *Difficulty `json:"difficulty"`
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	Content      *string     `json:"content"`
	Image        *string     `json:"image"`
}

type ListQuery struct {
	Filters  common.Filters
	AuthorID int
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}
