package adapthttp

import (
	"net/http"
)

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.Browse.ListGames(r.Context(), intQuery(r, "page", 1))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	game, err := s.svc.Browse.GetGame(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	reviews, err := s.svc.Browse.GameReviews(r.Context(), game)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := map[string]any{
		"game":          game,
		"reviews":       newReviewViews(reviews),
		"averageRating": averageRating(reviews),
	}
	if u := currentUser(r); u != nil {
		in, err := s.svc.Wishlist.Contains(r.Context(), u.Username, game.ID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		resp["inWishlist"] = in
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	review, err := s.svc.Reviews.AddReview(r.Context(), id, currentUser(r).Username, body.Rating, body.Comment)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"review": newReviewView(review)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	games, err := s.svc.Browse.Search(r.Context(), query)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "games": games})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.svc.Genres.ListGenres(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

func (s *Server) handleGenreGames(w http.ResponseWriter, r *http.Request) {
	genre := r.PathValue("genre")
	page, err := s.svc.Genres.GamesOfType(r.Context(), genre, intQuery(r, "page", 1))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"genre": genre, "items": page.Items, "meta": page.Meta})
}
