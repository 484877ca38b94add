package adapthttp

import (
	"context"
	"net/http"
)

func (s *Server) handleWishlist(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.Wishlist.List(r.Context(), currentUser(r).Username, intQuery(r, "page", 1))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleWishlistAdd(w http.ResponseWriter, r *http.Request) {
	s.changeWishlist(w, r, s.svc.Wishlist.Add)
}

func (s *Server) handleWishlistRemove(w http.ResponseWriter, r *http.Request) {
	s.changeWishlist(w, r, s.svc.Wishlist.Remove)
}

func (s *Server) changeWishlist(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, username string, gameID int) error) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	username := currentUser(r).Username
	if err := change(r.Context(), username, id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	n, err := s.svc.Wishlist.Count(r.Context(), username)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": n})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profiles.Get(r.Context(), r.PathValue("username"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username":      p.User.Username,
		"reviews":       newReviewViews(p.Reviews),
		"wishlist":      p.Wishlist,
		"wishlistCount": p.WishlistCount,
	})
}
