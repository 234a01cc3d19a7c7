package feed

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/utils"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/sampleuv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// mediaFilter matches tweets carrying at least one media descriptor of the
// given type via a JSONB containment test.
func mediaFilter(mediaType model.MediaType) datatypes.JSON {
	return datatypes.JSON(fmt.Sprintf(`[{"type":%d}]`, mediaType))
}

// withMediaFilter narrows the query when a media type is requested; a nil
// type leaves text-only tweets in.
func withMediaFilter(query *gorm.DB, mediaType *model.MediaType) *gorm.DB {
	if mediaType == nil {
		return query
	}
	return query.Where("tweets.medias @> ?", mediaFilter(*mediaType))
}

// HomeScope selects tweets authored by the viewer or anyone the viewer
// follows, filtered to the requested media type. The audience predicate is
// pushed into the query so Circle tweets from outside the viewer's circles
// never become candidates; the composer's visibility stage re-checks the
// survivors.
type HomeScope struct {
	ViewerID    string
	FollowedIDs []string
	MediaType   *model.MediaType
}

func (s HomeScope) authorIDs() []string {
	ids := make([]string, 0, len(s.FollowedIDs)+1)
	ids = append(ids, s.FollowedIDs...)
	ids = append(ids, s.ViewerID)
	return ids
}

func (s HomeScope) query(db *gorm.DB) *gorm.DB {
	return withMediaFilter(db.Model(&model.Tweet{}), s.MediaType).
		Where("tweets.author_id IN ?", s.authorIDs()).
		Where(
			"tweets.audience = ? OR tweets.author_id = ? OR EXISTS (SELECT 1 FROM user_circles WHERE user_circles.user_id = tweets.author_id AND user_circles.member_id = ? AND user_circles.deleted_at IS NULL)",
			model.TweetAudienceEveryone, s.ViewerID, s.ViewerID,
		)
}

func (s HomeScope) Candidates(db *gorm.DB, p model.Pagination) ([]*model.Tweet, error) {
	var tweets []*model.Tweet
	if err := s.query(db).
		Preload("Author").
		Preload("Author.Circle").
		Order("tweets.created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&tweets).Error; err != nil {
		return nil, errors.Wrap(err, "fail to select home feed candidates")
	}
	return tweets, nil
}

func (s HomeScope) Total(db *gorm.DB) (int64, error) {
	var total int64
	if err := s.query(db).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "fail to count home feed candidates")
	}
	return total, nil
}

func (s HomeScope) RecordsViews() bool { return true }

// DiscoveryScope samples tweets from authors the viewer does not follow,
// without replacement, up to the page limit. Pagination beyond the sampled
// window is intentionally meaningless for a random feed.
type DiscoveryScope struct {
	ViewerID    string
	ExcludedIDs []string
	MediaType   *model.MediaType
	// Src seeds the sampler; nil falls back to the global source.
	Src rand.Source
}

func (s DiscoveryScope) query(db *gorm.DB) *gorm.DB {
	query := withMediaFilter(db.Model(&model.Tweet{}), s.MediaType)
	if len(s.ExcludedIDs) > 0 {
		query = query.Where("tweets.author_id NOT IN ?", s.ExcludedIDs)
	}
	return query
}

func (s DiscoveryScope) Candidates(db *gorm.DB, p model.Pagination) ([]*model.Tweet, error) {
	var poolIDs []string
	if err := s.query(db).Pluck("tweets.id", &poolIDs).Error; err != nil {
		return nil, errors.Wrap(err, "fail to select discovery pool")
	}
	if len(poolIDs) == 0 {
		return []*model.Tweet{}, nil
	}

	k := utils.Min(p.Limit, len(poolIDs))
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, len(poolIDs), s.Src)

	sampledIDs := make([]string, 0, k)
	for _, idx := range idxs {
		sampledIDs = append(sampledIDs, poolIDs[idx])
	}

	var tweets []*model.Tweet
	if err := db.Preload("Author").
		Preload("Author.Circle").
		Where("id IN ?", sampledIDs).
		Find(&tweets).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load sampled tweets")
	}
	return tweets, nil
}

func (s DiscoveryScope) Total(db *gorm.DB) (int64, error) {
	var total int64
	if err := s.query(db).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "fail to count discovery pool")
	}
	return total, nil
}

func (s DiscoveryScope) RecordsViews() bool { return false }

// ProfileScope selects one author's tweets. Visibility is resolved against
// the viewer, not the profile owner, in the composer's filtering stage.
type ProfileScope struct {
	ProfileID string
}

func (s ProfileScope) query(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Tweet{}).Where("tweets.author_id = ?", s.ProfileID)
}

func (s ProfileScope) Candidates(db *gorm.DB, p model.Pagination) ([]*model.Tweet, error) {
	var tweets []*model.Tweet
	if err := s.query(db).
		Preload("Author").
		Preload("Author.Circle").
		Order("tweets.created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&tweets).Error; err != nil {
		return nil, errors.Wrap(err, "fail to select profile candidates")
	}
	return tweets, nil
}

func (s ProfileScope) Total(db *gorm.DB) (int64, error) {
	var total int64
	if err := s.query(db).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "fail to count profile candidates")
	}
	return total, nil
}

func (s ProfileScope) RecordsViews() bool { return false }

// ThreadScope selects the children of one tweet filtered by child type.
// The parent's own audience check is the caller's terminal gate before the
// composer runs.
type ThreadScope struct {
	ParentID  string
	ChildType model.TweetType
}

func (s ThreadScope) query(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Tweet{}).
		Where("tweets.parent_id = ? AND tweets.type = ?", s.ParentID, s.ChildType)
}

func (s ThreadScope) Candidates(db *gorm.DB, p model.Pagination) ([]*model.Tweet, error) {
	var tweets []*model.Tweet
	if err := s.query(db).
		Preload("Author").
		Preload("Author.Circle").
		Order("tweets.created_at asc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&tweets).Error; err != nil {
		return nil, errors.Wrap(err, "fail to select thread candidates")
	}
	return tweets, nil
}

func (s ThreadScope) Total(db *gorm.DB) (int64, error) {
	var total int64
	if err := s.query(db).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "fail to count thread candidates")
	}
	return total, nil
}

func (s ThreadScope) RecordsViews() bool { return true }
