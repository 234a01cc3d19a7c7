// Package feed is the read core: it composes candidate tweets into
// decorated, paginated feed pages while enforcing audience visibility and
// recording reads.
package feed

import (
	"errors"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/store"
	"github.com/chirpnet/chirp/utils"
)

// Policy decides whether a viewer may see a tweet. An empty viewerID means
// an anonymous reader.
type Policy struct {
	store *store.Store
}

func NewPolicy(s *store.Store) *Policy {
	return &Policy{store: s}
}

// CanView is the silent form used when composing multi-item feeds: an
// invisible candidate is simply omitted. Circle tweets fail closed when the
// author cannot be resolved or is banned.
func (p *Policy) CanView(tweet *model.Tweet, viewerID string) (bool, error) {
	if tweet.Audience == model.TweetAudienceEveryone {
		return true, nil
	}
	if viewerID == "" {
		return false, nil
	}
	if viewerID == tweet.AuthorID {
		return true, nil
	}

	author, err := p.resolveAuthor(tweet)
	if err != nil {
		return false, err
	}
	if author == nil || author.Verify == model.UserVerifyStatusBanned {
		return false, nil
	}

	members, err := p.circleMemberIDs(tweet, author)
	if err != nil {
		return false, err
	}
	return utils.ContainsString(members, viewerID), nil
}

// Authorize is the terminal gate on a single-tweet fetch: instead of
// silently filtering it surfaces the client-facing error. Anonymous viewers
// get 401, an unresolvable or banned author maps to 404, and a viewer
// outside the circle gets 403.
func (p *Policy) Authorize(tweet *model.Tweet, viewerID string) error {
	if tweet.Audience == model.TweetAudienceEveryone {
		return nil
	}
	if viewerID == "" {
		return model.ErrLoginRequired
	}

	author, err := p.resolveAuthor(tweet)
	if err != nil {
		return err
	}
	if author == nil || author.Verify == model.UserVerifyStatusBanned {
		return model.ErrUserNotFound
	}
	if viewerID == tweet.AuthorID {
		return nil
	}

	members, err := p.circleMemberIDs(tweet, author)
	if err != nil {
		return err
	}
	if !utils.ContainsString(members, viewerID) {
		return model.ErrTweetNotPublic
	}
	return nil
}

// resolveAuthor prefers the preloaded association and falls back to a store
// lookup. A missing author resolves to nil rather than an error so callers
// can fail closed.
func (p *Policy) resolveAuthor(tweet *model.Tweet) (*model.User, error) {
	if tweet.Author != nil {
		return tweet.Author, nil
	}
	author, err := p.store.GetUser(tweet.AuthorID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return author, nil
}

func (p *Policy) circleMemberIDs(tweet *model.Tweet, author *model.User) ([]string, error) {
	if author.Circle != nil {
		ids := make([]string, 0, len(author.Circle))
		for _, member := range author.Circle {
			ids = append(ids, member.Id)
		}
		return ids, nil
	}
	return p.store.CircleMemberIDs(tweet.AuthorID)
}
