package model

// TweetType describes what kind of tweet a record is. The numeric values are
// part of the wire format and must stay stable.
type TweetType int

const (
	TweetTypeOriginal TweetType = iota
	TweetTypeRetweet
	TweetTypeComment
	TweetTypeQuoteTweet
)

// IsValid returns true iff t is a known tweet type.
func (t TweetType) IsValid() bool {
	return t >= TweetTypeOriginal && t <= TweetTypeQuoteTweet
}

// RequiresParent returns true for tweet types that must reference an existing
// parent tweet. Original tweets must not carry a parent.
func (t TweetType) RequiresParent() bool {
	return t == TweetTypeRetweet || t == TweetTypeComment || t == TweetTypeQuoteTweet
}

// TweetAudience is the visibility scope of a tweet.
type TweetAudience int

const (
	TweetAudienceEveryone TweetAudience = iota
	TweetAudienceCircle
)

func (a TweetAudience) IsValid() bool {
	return a == TweetAudienceEveryone || a == TweetAudienceCircle
}

// MediaType describes an attached media descriptor.
type MediaType int

const (
	MediaTypeImage MediaType = iota
	MediaTypeVideo
)

func (m MediaType) IsValid() bool {
	return m == MediaTypeImage || m == MediaTypeVideo
}

// UserVerifyStatus is the account verification state. Banned users fail all
// circle visibility checks closed.
type UserVerifyStatus int

const (
	UserVerifyStatusUnverified UserVerifyStatus = iota
	UserVerifyStatusVerified
	UserVerifyStatusBanned
)
