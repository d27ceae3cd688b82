package core

// VoteType is a user's verdict on a song.
type VoteType string

const (
	VoteLike    VoteType = "LIKE"
	VoteDislike VoteType = "DISLIKE"
)

// Valid reports whether the vote type is one the backend accepts.
func (v VoteType) Valid() bool {
	return v == VoteLike || v == VoteDislike
}
