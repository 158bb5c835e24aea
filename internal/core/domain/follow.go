package domain

// FollowState est le résultat d'un ToggleFollow.
type FollowState string

const (
	StateFollowed   FollowState = "followed"
	StateUnfollowed FollowState = "unfollowed"
)
