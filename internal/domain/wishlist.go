package domain

// WishlistEntry relates one user to one saved game.
type WishlistEntry struct {
	Username string `json:"username"`
	GameID   int    `json:"gameId"`
}
