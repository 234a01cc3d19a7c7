package feed

import (
	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/store"
	"gorm.io/gorm"
)

// Scope selects the candidate tweets for one feed shape. The composer runs
// the same pipeline over every scope: candidate selection, visibility
// filtering, decoration, view recording, pagination metadata.
type Scope interface {
	// Candidates returns one page of candidate tweets with their authors
	// (and circles) preloaded.
	Candidates(db *gorm.DB, p model.Pagination) ([]*model.Tweet, error)
	// Total counts the full candidate set for page-count computation. It is
	// an independent query and only eventually consistent with Candidates.
	Total(db *gorm.DB) (int64, error)
	// RecordsViews reports whether reading this feed counts as reading its
	// tweets.
	RecordsViews() bool
}

// Composer orchestrates the per-request feed pipeline.
type Composer struct {
	db         *gorm.DB
	policy     *Policy
	aggregator *Aggregator
	counter    *ViewCounter
}

func NewComposer(db *gorm.DB, s *store.Store) *Composer {
	return &Composer{
		db:         db,
		policy:     NewPolicy(s),
		aggregator: NewAggregator(s),
		counter:    NewViewCounter(db),
	}
}

func (c *Composer) Policy() *Policy {
	return c.policy
}

// Compose produces one decorated feed page for the viewer. Candidates the
// viewer may not see are silently omitted; any stage failure aborts the
// whole page.
func (c *Composer) Compose(scope Scope, viewerID string, p model.Pagination) (*model.FeedPage, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	candidates, err := scope.Candidates(c.db, p)
	if err != nil {
		return nil, err
	}

	visible := make([]*model.Tweet, 0, len(candidates))
	for _, candidate := range candidates {
		ok, err := c.policy.CanView(candidate, viewerID)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, candidate)
		}
	}

	views, err := c.aggregator.Decorate(visible, viewerID)
	if err != nil {
		return nil, err
	}

	if scope.RecordsViews() {
		if err := c.counter.RecordViews(views, viewerID); err != nil {
			return nil, err
		}
	}

	total, err := scope.Total(c.db)
	if err != nil {
		return nil, err
	}

	return &model.FeedPage{
		Result:    views,
		Limit:     p.Limit,
		Page:      p.Page,
		TotalPage: model.TotalPages(total, p.Limit),
	}, nil
}

// Visible filters a fixed tweet list down to what the viewer may see and
// decorates the survivors. No views are recorded and no paging applies.
func (c *Composer) Visible(tweets []*model.Tweet, viewerID string) ([]*model.TweetView, error) {
	visible := make([]*model.Tweet, 0, len(tweets))
	for _, tweet := range tweets {
		ok, err := c.policy.CanView(tweet, viewerID)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, tweet)
		}
	}
	return c.aggregator.Decorate(visible, viewerID)
}

// One decorates a single, already authorized tweet and records the read.
// The returned view reflects the post-increment counters.
func (c *Composer) One(tweet *model.Tweet, viewerID string) (*model.TweetView, error) {
	views, err := c.aggregator.Decorate([]*model.Tweet{tweet}, viewerID)
	if err != nil {
		return nil, err
	}
	view := views[0]

	guestViews, userViews, err := c.counter.RecordView(tweet.Id, viewerID)
	if err != nil {
		return nil, err
	}
	view.GuestView = guestViews
	view.UserView = userViews
	view.View = guestViews + userViews
	return view, nil
}
