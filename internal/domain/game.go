// Package domain contains the core business entities and interfaces.
package domain

import "strings"

// Genre is a game category identified by its name.
type Genre struct {
	Name string `json:"name"`
}

// Publisher is the company that released a game, identified by its name.
type Publisher struct {
	Name string `json:"name"`
}

// Game is a catalog entry.
type Game struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	ReleaseDate string     `json:"releaseDate"`
	ImageURL    string     `json:"imageUrl"`
	Price       float64    `json:"price"`
	Description string     `json:"description,omitempty"`
	Publisher   *Publisher `json:"publisher,omitempty"`
	Genres      []Genre    `json:"genres"`
	Reviews     []*Review  `json:"-"`
}

// NewGame returns a game with the given id and title. Titles are trimmed.
func NewGame(id int, title string) *Game {
	return &Game{ID: id, Title: strings.TrimSpace(title)}
}

// AddGenre adds g to the game's genre set. Duplicates are ignored.
func (g *Game) AddGenre(genre Genre) {
	if g.HasGenre(genre.Name) {
		return
	}
	g.Genres = append(g.Genres, genre)
}

// HasGenre reports whether the game carries the named genre.
func (g *Game) HasGenre(name string) bool {
	for _, genre := range g.Genres {
		if genre == (Genre{Name: name}) {
			return true
		}
	}
	return false
}

// AddReview appends r to the game's review list unless it is already there.
func (g *Game) AddReview(r *Review) {
	if g.HasReview(r) {
		return
	}
	g.Reviews = append(g.Reviews, r)
}

// HasReview reports whether r is in the game's review list.
func (g *Game) HasReview(r *Review) bool {
	for _, existing := range g.Reviews {
		if existing == r {
			return true
		}
	}
	return false
}

// GameLess orders games by title, then by id.
func GameLess(a, b *Game) bool {
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}
