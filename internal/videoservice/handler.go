package videoservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/recipehub/internal/common"
)

func NewVideoService(db *sql.DB) *VideoService {
	return &VideoService{m: newVideoModel(db)}
}

// apply copies the provided fields of in onto v.
func (in VideoInput) apply(v *Video) {
	if in.Title != nil {
		v.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		v.Description = strings.TrimSpace(*in.Description)
	}
	if in.Ingredients != nil {
		v.Ingredients = in.Ingredients
	}
	if in.CookingSteps != nil {
		v.CookingSteps = in.CookingSteps
	}
	if in.Category != nil {
		v.Category = strings.ToLower(strings.TrimSpace(*in.Category))
	}
	if in.Duration != nil {
		v.Duration = *in.Duration
	}
	if in.VideoURL != nil {
		v.VideoURL = strings.TrimSpace(*in.VideoURL)
	}
	if in.ThumbnailURL != nil {
		v.ThumbnailURL = strings.TrimSpace(*in.ThumbnailURL)
	}
}

// CreateVideo stores the metadata of an uploaded video for the author.
func (s *VideoService) CreateVideo(ctx context.Context, authorID int, in VideoInput) (*Video, error) {
	video := &Video{
		Ingredients:  []string{},
		CookingSteps: CookingSteps{},
		Category:     DefaultCategory,
		Author:       common.Author{ID: authorID},
	}
	in.apply(video)

	v := common.NewValidator()
	validateInt(v, authorID, "author_id")
	validateVideo(v, video)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, video)
	if err != nil {
		return nil, err
	}

	return s.m.getByID(ctx, video.ID)
}

func (s *VideoService) GetVideoByID(ctx context.Context, id int) (*Video, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

// UpdateVideo applies in to the video. Only the author may update it.
func (s *VideoService) UpdateVideo(ctx context.Context, id, requesterID int, in VideoInput) (*Video, error) {
	video, err := s.GetVideoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = common.Authorize(video, requesterID, common.ActionUpdate)
	if err != nil {
		return nil, err
	}

	in.apply(video)

	v := common.NewValidator()
	validateVideo(v, video)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.update(ctx, video)
	if err != nil {
		return nil, err
	}

	return video, nil
}

// DeleteVideo removes the video together with its comments and reactions. Only the author may delete it.
func (s *VideoService) DeleteVideo(ctx context.Context, id, requesterID int) error {
	video, err := s.GetVideoByID(ctx, id)
	if err != nil {
		return err
	}

	err = common.Authorize(video, requesterID, common.ActionDelete)
	if err != nil {
		return err
	}

	return s.m.delete(ctx, id)
}

// ListVideos returns a page of videos matching q.
func (s *VideoService) ListVideos(ctx context.Context, q ListQuery) ([]*Video, common.Metadata, error) {
	q.Filters.SortSafelist = SortSafelist
	if q.Filters.Sort == "" {
		q.Filters.Sort = "-createdAt"
	}
	if q.Category == AllCategories {
		q.Category = ""
	}
	q.Category = strings.ToLower(q.Category)

	v := common.NewValidator()
	common.ValidateFilters(v, q.Filters)
	if !v.Valid() {
		return nil, common.Metadata{}, v.ValidationError()
	}

	videos, total, err := s.m.list(ctx, q)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return videos, common.CalculateMetadata(total, q.Filters.Page, q.Filters.Limit), nil
}

// ListLikedBy returns up to limit videos the user liked.
func (s *VideoService) ListLikedBy(ctx context.Context, userID, limit int) ([]*Video, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, limit, "limit")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.listLikedBy(ctx, userID, limit)
}

// AddView increments the view counter and returns the new value.
func (s *VideoService) AddView(ctx context.Context, id int) (int, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	return s.m.incrementViews(ctx, id)
}
