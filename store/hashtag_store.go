package store

import (
	"strings"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NormalizeHashtag strips the leading '#' and lower-cases the tag so that
// at most one record per name can ever exist.
func NormalizeHashtag(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
}

// FindOrCreateHashtags idempotently maps raw hashtag strings to stable
// hashtag records. Concurrent callers racing on the same new name are
// serialized by the unique index on the name column, not locally.
func (s *Store) FindOrCreateHashtags(names []string) ([]*model.Hashtag, error) {
	return findOrCreateHashtags(s.db, names)
}

func findOrCreateHashtags(db *gorm.DB, names []string) ([]*model.Hashtag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	normalized := []string{}
	for _, name := range names {
		name = NormalizeHashtag(name)
		if name == "" || utils.ContainsString(normalized, name) {
			continue
		}
		normalized = append(normalized, name)
	}
	// Names like "#" or whitespace normalize away entirely.
	if len(normalized) == 0 {
		return nil, nil
	}

	candidates := make([]*model.Hashtag, 0, len(normalized))
	for _, name := range normalized {
		candidates = append(candidates, &model.Hashtag{Id: uuid.New().String(), Name: name})
	}
	// On a name collision keep the existing record; the re-select below
	// picks up whichever row won.
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidates).Error; err != nil {
		return nil, errors.Wrap(err, "fail to upsert hashtags")
	}

	var hashtags []*model.Hashtag
	if err := db.Where("name IN ?", normalized).Find(&hashtags).Error; err != nil {
		return nil, errors.Wrap(err, "fail to reload hashtags")
	}

	// Preserve the caller's ordering.
	byName := make(map[string]*model.Hashtag, len(hashtags))
	for _, hashtag := range hashtags {
		byName[hashtag.Name] = hashtag
	}
	ordered := make([]*model.Hashtag, 0, len(normalized))
	for _, name := range normalized {
		if hashtag, ok := byName[name]; ok {
			ordered = append(ordered, hashtag)
		}
	}
	return ordered, nil
}

// MentionSummaries is a pure batch lookup projecting mentioned users down
// to their safe summary fields.
func (s *Store) MentionSummaries(ids []string) ([]model.UserSummary, error) {
	if len(ids) == 0 {
		return []model.UserSummary{}, nil
	}
	var users []*model.User
	if err := s.db.Select("id", "name", "username", "avatar").
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load mention summaries")
	}
	summaries := make([]model.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}
	return summaries, nil
}
