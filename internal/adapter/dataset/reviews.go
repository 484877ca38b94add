package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gamelibrary/internal/domain"
)

// Column headers of a reviews CSV.
const (
	colUsername  = "Username"
	colGameID    = "AppID"
	colRating    = "Rating"
	colComment   = "Comment"
	colTimestamp = "Timestamp"
)

// LoadReviewsFile reads the reviews CSV at path into ds.
func LoadReviewsFile(path string, ds *Dataset) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	return ReadReviewsCSV(f, ds)
}

// ReadReviewsCSV parses a reviews CSV and attaches every review to a game
// already in ds. Reviewers become users without a password; they can only
// sign in through SSO. Rows naming an unknown game, an invalid rating or an
// empty comment are skipped. Timestamps are RFC 3339; a blank one means now.
func ReadReviewsCSV(r io.Reader, ds *Dataset) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("dataset: empty reviews file")
		}
		return fmt.Errorf("dataset: read reviews header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{colUsername, colGameID, colRating, colComment} {
		if _, ok := cols[required]; !ok {
			return fmt.Errorf("dataset: missing reviews column %q", required)
		}
	}

	games := make(map[int]*domain.Game, len(ds.Games))
	for _, g := range ds.Games {
		games[g.ID] = g
	}
	users := make(map[string]*domain.User, len(ds.Users))
	for _, u := range ds.Users {
		users[u.Username] = u
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("dataset: reviews line %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		username := field(colUsername)
		id, err := strconv.Atoi(field(colGameID))
		game := games[id]
		if err != nil || game == nil || username == "" {
			slog.Warn("skipping review of unknown game", "line", line, "id", field(colGameID), "user", username)
			continue
		}
		rating, err := strconv.Atoi(field(colRating))
		if err != nil {
			slog.Warn("skipping review with invalid rating", "line", line, "rating", field(colRating))
			continue
		}
		at := time.Now()
		if ts := field(colTimestamp); ts != "" {
			if at, err = time.Parse(time.RFC3339, ts); err != nil {
				slog.Warn("skipping review with invalid timestamp", "line", line, "timestamp", ts)
				continue
			}
		}

		user, ok := users[username]
		if !ok {
			user = domain.NewUser(username, "")
			users[username] = user
			ds.Users = append(ds.Users, user)
		}
		review, err := domain.NewReview(user, game, rating, field(colComment), at)
		if err != nil {
			slog.Warn("skipping invalid review", "line", line, "err", err)
			continue
		}
		review.Link()
		ds.Reviews = append(ds.Reviews, review)
	}
	return nil
}
