package videoservice

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sushihentaime/recipehub/internal/common"
)

const (
	DefaultCategory = "general"
	// AllCategories is the category filter value that disables filtering.
	AllCategories = "all"
)

// SortSafelist maps the sort keys clients may send to video columns.
var SortSafelist = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"views":     "views",
	"likes":     "likes_count",
}

type CookingStep struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
}

// CookingSteps is stored as a jsonb column.
type CookingSteps []CookingStep

func (s CookingSteps) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *CookingSteps) Scan(src any) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cooking steps: unexpected type %T", src)
	}
	return json.Unmarshal(b, s)
}

type Video struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Ingredients   []string      `json:"ingredients"`
	CookingSteps  CookingSteps  `json:"cookingSteps"`
	Category      string        `json:"category"`
	Duration      int           `json:"duration"`
	VideoURL      string        `json:"videoUrl"`
	ThumbnailURL  string        `json:"thumbnailUrl"`
	Author        common.Author `json:"author"`
	Views         int           `json:"views"`
	LikesCount    int           `json:"likesCount"`
	DislikesCount int           `json:"dislikesCount"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Version       int           `json:"-"`
}

func (v *Video) OwnerID() int {
	return v.Author.ID
}

// VideoInput is the client-editable part of a video. On update, nil fields keep their value.
type VideoInput struct {
	Title        *string      `json:"title"`
	Description  *string      `json:"description"`
	Ingredients  []string     `json:"ingredients"`
	CookingSteps CookingSteps `json:"cookingSteps"`
	Category     *string      `json:"category"`
	Duration     *int         `json:"duration"`
	VideoURL     *string      `json:"videoUrl"`
	ThumbnailURL *string      `json:"thumbnailUrl"`
}

// ListQuery narrows a video listing. Zero values mean no filter.
type ListQuery struct {
	Filters  common.Filters
	Category string
	AuthorID int
}

type VideoModel struct {
	db *sql.DB
}

type VideoService struct {
	m *VideoModel
}
