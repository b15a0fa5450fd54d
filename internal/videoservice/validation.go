package videoservice

import (
	"strconv"
	"strings"

	"github.com/sushihentaime/recipehub/internal/common"
)

func validateVideo(v *common.Validator, video *Video) {
	v.Check(strings.TrimSpace(video.Title) != "", "title", "must be provided")
	v.Check(v.CheckStringLength(video.Title, 1, 200), "title", "must not be more than 200 characters long")

	v.Check(strings.TrimSpace(video.Description) != "", "description", "must be provided")
	v.Check(v.CheckStringLength(video.Description, 1, 5000), "description", "must not be more than 5000 characters long")

	v.Check(video.VideoURL != "", "videoUrl", "must be provided")
	v.Check(common.ValidURL(video.VideoURL), "videoUrl", "must be a valid URL")

	if video.ThumbnailURL != "" {
		v.Check(common.ValidURL(video.ThumbnailURL), "thumbnailUrl", "must be a valid URL")
	}

	v.Check(video.Category != "", "category", "must be provided")
	v.Check(v.CheckStringLength(video.Category, 1, 50), "category", "must not be more than 50 characters long")
	v.Check(video.Category != AllCategories, "category", "is reserved")

	v.Check(video.Duration >= 0, "duration", "must not be negative")

	v.Check(len(video.Ingredients) <= 100, "ingredients", "must not contain more than 100 items")
	for i, ingredient := range video.Ingredients {
		v.Check(strings.TrimSpace(ingredient) != "", "ingredients["+strconv.Itoa(i)+"]", "must not be empty")
	}

	for i, step := range video.CookingSteps {
		field := "cookingSteps[" + strconv.Itoa(i) + "]"
		v.Check(strings.TrimSpace(step.Description) != "", field, "description must be provided")
		v.Check(step.Duration >= 0, field, "duration must not be negative")
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
