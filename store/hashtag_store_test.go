package store

import (
	"testing"

	"github.com/chirpnet/chirp/utils"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHashtag(t *testing.T) {
	require.Equal(t, "golang", NormalizeHashtag("#Golang"))
	require.Equal(t, "golang", NormalizeHashtag("golang"))
	require.Equal(t, "backend", NormalizeHashtag("#BACKEND"))
}

func TestFindOrCreateHashtagsDedupes(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	hashtags, err := s.FindOrCreateHashtags([]string{"#Golang", "golang", "backend", "#Backend"})
	require.NoError(t, err)
	require.Len(t, hashtags, 2)
	require.Equal(t, "golang", hashtags[0].Name)
	require.Equal(t, "backend", hashtags[1].Name)
}

func TestFindOrCreateHashtagsAllEmptyNames(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	hashtags, err := s.FindOrCreateHashtags([]string{"#", "  ", ""})
	require.NoError(t, err)
	require.Empty(t, hashtags)
}

func TestFindOrCreateHashtagsReusesRows(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	first, err := s.FindOrCreateHashtags([]string{"golang"})
	require.NoError(t, err)
	second, err := s.FindOrCreateHashtags([]string{"#Golang", "news"})
	require.NoError(t, err)

	require.Equal(t, first[0].Id, second[0].Id)
	require.Equal(t, "news", second[1].Name)
}

func TestMentionSummariesProjection(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	user := utils.TestCreateUser(t, db, "mentioned")
	require.NoError(t, db.Model(user).Update("password", "a-bcrypt-hash").Error)

	summaries, err := s.MentionSummaries([]string{user.Id})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, user.Id, summaries[0].Id)
	require.Equal(t, "mentioned", summaries[0].Username)
}
