package memory

import (
	"context"
	"fmt"
	"testing"

	"gamelibrary/internal/domain"
)

// fixtureSize mirrors the 99-row test dataset: every game is Action, the
// first 64 are also Indie and the first 82 are also Adventure.
const fixtureSize = 99

func fixtureGames() []*domain.Game {
	known := []*domain.Game{
		domain.NewGame(572510, "Superola Champion Edition"),
		domain.NewGame(311120, "The Stalin Subway: Red Veil"),
		domain.NewGame(465070, "Call of Juarez"),
		domain.NewGame(1581010, "Tiny Island Survival"),
		domain.NewGame(7940, "Call of Duty 4: Modern Warfare"),
		domain.NewGame(1228870, "Bartlow's Dread Machine"),
	}
	games := make([]*domain.Game, 0, fixtureSize)
	games = append(games, known...)
	for i := len(known); i < fixtureSize; i++ {
		games = append(games, domain.NewGame(100000+i, fmt.Sprintf("Procedural Dungeon %02d", i)))
	}

	for i, g := range games {
		g.Price = float64(i%10) + 0.99
		g.Publisher = &domain.Publisher{Name: "Publisher " + string(rune('A'+i%3))}
		g.AddGenre(domain.Genre{Name: "Action"})
		if i < 64 {
			g.AddGenre(domain.Genre{Name: "Indie"})
		}
		if i < 82 {
			g.AddGenre(domain.Genre{Name: "Adventure"})
		}
	}
	return games
}

func newFixtureDB(t *testing.T) *DB {
	t.Helper()
	db := New()
	if err := db.AddMultipleGenres(context.Background(), []domain.Genre{{Name: "Action"}, {Name: "Indie"}, {Name: "Adventure"}}); err != nil {
		t.Fatalf("AddMultipleGenres: %v", err)
	}
	if err := db.AddMultipleGames(context.Background(), fixtureGames()); err != nil {
		t.Fatalf("AddMultipleGames: %v", err)
	}
	return db
}
