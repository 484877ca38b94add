package domain

// User is a registered member of the site, identified by username.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Reviews      []*Review `json:"-"`
	Favourites   []*Game   `json:"-"`
}

// NewUser returns a user with the given username and password hash.
func NewUser(username, passwordHash string) *User {
	return &User{Username: username, PasswordHash: passwordHash}
}

// AddReview appends r to the user's review list unless it is already there.
func (u *User) AddReview(r *Review) {
	for _, existing := range u.Reviews {
		if existing == r {
			return
		}
	}
	u.Reviews = append(u.Reviews, r)
}

// HasReview reports whether r is in the user's review list.
func (u *User) HasReview(r *Review) bool {
	for _, existing := range u.Reviews {
		if existing == r {
			return true
		}
	}
	return false
}

// HasFavourite reports whether the game with the given id is on the wishlist.
func (u *User) HasFavourite(gameID int) bool {
	for _, g := range u.Favourites {
		if g.ID == gameID {
			return true
		}
	}
	return false
}

// AddFavouriteGame puts g on the user's wishlist unless it is already there.
func (u *User) AddFavouriteGame(g *Game) {
	if u.HasFavourite(g.ID) {
		return
	}
	u.Favourites = append(u.Favourites, g)
}

// RemoveFavouriteGame takes g off the user's wishlist if present.
func (u *User) RemoveFavouriteGame(g *Game) {
	for i, fav := range u.Favourites {
		if fav.ID == g.ID {
			u.Favourites = append(u.Favourites[:i], u.Favourites[i+1:]...)
			return
		}
	}
}
