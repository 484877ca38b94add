package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamelibrary/internal/adapter/memory"
	"gamelibrary/internal/domain"
)

func TestProfile(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	game := domain.NewGame(465070, "Call of Juarez")
	_ = repo.AddGame(ctx, game)
	user := domain.NewUser("thorke", "hash")
	_ = repo.AddUser(ctx, user)

	r, _ := domain.NewReview(user, game, 4, "Solid western", time.Now())
	r.Link()
	_ = repo.AddReview(ctx, r)
	_ = repo.AddWishlistGame(ctx, user, game)

	p, err := NewProfileService(repo).Get(ctx, "thorke")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.User != user || len(p.Reviews) != 1 || len(p.Wishlist) != 1 || p.WishlistCount != 1 {
		t.Errorf("unexpected profile %+v", p)
	}

	if _, err := NewProfileService(repo).Get(ctx, "nobody"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
}
