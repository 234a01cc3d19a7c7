package feed

import (
	"fmt"
	"time"

	"github.com/chirpnet/chirp/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ViewCounter records qualifying reads. Exactly one counter moves per call:
// user_view when a viewer id is present, guest_view otherwise. Increments
// are single UPDATE .. RETURNING statements so concurrent readers never
// lose updates and the caller sees the post-increment state.
type ViewCounter struct {
	db *gorm.DB
}

func NewViewCounter(db *gorm.DB) *ViewCounter {
	return &ViewCounter{db: db}
}

type viewRow struct {
	Id        string
	GuestView int64
	UserView  int64
}

// RecordView increments one tweet's counter and returns the stored
// post-increment values. Callers must not bump the returned numbers again.
func (c *ViewCounter) RecordView(tweetID string, viewerID string) (int64, int64, error) {
	var row viewRow
	result := c.db.Raw(
		fmt.Sprintf("UPDATE tweets SET %s = %s + 1, updated_at = ? WHERE id = ? RETURNING id, guest_view, user_view", viewColumn(viewerID), viewColumn(viewerID)),
		time.Now(), tweetID,
	).Scan(&row)
	if result.Error != nil {
		return 0, 0, errors.Wrap(result.Error, "fail to record view")
	}
	if result.RowsAffected != 1 {
		return 0, 0, model.ErrTweetNotFound
	}
	return row.GuestView, row.UserView, nil
}

// RecordViews applies the same viewer-presence rule uniformly to a page of
// tweets in one batched update and patches the decorated views with the
// post-increment numbers, so the response reads its own write.
func (c *ViewCounter) RecordViews(views []*model.TweetView, viewerID string) error {
	if len(views) == 0 {
		return nil
	}
	ids := make([]string, 0, len(views))
	for _, view := range views {
		ids = append(ids, view.Id)
	}

	now := time.Now()
	var rows []viewRow
	result := c.db.Raw(
		fmt.Sprintf("UPDATE tweets SET %s = %s + 1, updated_at = ? WHERE id IN ? RETURNING id, guest_view, user_view", viewColumn(viewerID), viewColumn(viewerID)),
		now, ids,
	).Scan(&rows)
	if result.Error != nil {
		return errors.Wrap(result.Error, "fail to record page views")
	}

	byID := make(map[string]viewRow, len(rows))
	for _, row := range rows {
		byID[row.Id] = row
	}
	for _, view := range views {
		row, ok := byID[view.Id]
		if !ok {
			continue
		}
		view.GuestView = row.GuestView
		view.UserView = row.UserView
		view.View = row.GuestView + row.UserView
		view.UpdatedAt = now
	}
	return nil
}

func viewColumn(viewerID string) string {
	if viewerID != "" {
		return "user_view"
	}
	return "guest_view"
}
