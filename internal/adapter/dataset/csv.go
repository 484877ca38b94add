// Package dataset loads the games catalog from a Steam-style CSV export.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"gamelibrary/internal/domain"
)

// Column headers read from the CSV. Other columns are ignored.
const (
	colID          = "AppID"
	colName        = "Name"
	colReleaseDate = "Release date"
	colPrice       = "Price"
	colDescription = "About the game"
	colImage       = "Header image"
	colPublishers  = "Publishers"
	colGenres      = "Genres"
)

// Dataset is the parsed contents of a games CSV and, optionally, a reviews
// CSV. Reviews are linked to the dataset's own users and games.
type Dataset struct {
	Games      []*domain.Game
	Genres     []domain.Genre
	Publishers []domain.Publisher
	Users      []*domain.User
	Reviews    []*domain.Review
}

// LoadFile reads the CSV at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	return ReadCSV(f)
}

// ReadCSV parses a games CSV. The first record is the header; columns are
// located by name. Rows with an unparsable id are skipped.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset: empty file")
		}
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{colID, colName} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset: missing column %q", required)
		}
	}

	ds := &Dataset{}
	genres := make(map[string]bool)
	publishers := make(map[string]bool)

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		id, err := strconv.Atoi(field(colID))
		if err != nil {
			slog.Warn("skipping row with invalid id", "line", line, "id", field(colID))
			continue
		}

		g := domain.NewGame(id, field(colName))
		g.ReleaseDate = field(colReleaseDate)
		g.Description = field(colDescription)
		g.ImageURL = field(colImage)
		if p := field(colPrice); p != "" {
			price, err := strconv.ParseFloat(p, 64)
			if err != nil {
				slog.Warn("invalid price", "line", line, "price", p)
			} else {
				g.Price = price
			}
		}

		for _, name := range splitList(field(colPublishers)) {
			if g.Publisher == nil {
				g.Publisher = &domain.Publisher{Name: name}
			}
			if !publishers[name] {
				publishers[name] = true
				ds.Publishers = append(ds.Publishers, domain.Publisher{Name: name})
			}
		}
		for _, name := range splitList(field(colGenres)) {
			g.AddGenre(domain.Genre{Name: name})
			if !genres[name] {
				genres[name] = true
				ds.Genres = append(ds.Genres, domain.Genre{Name: name})
			}
		}

		ds.Games = append(ds.Games, g)
	}

	sort.Slice(ds.Genres, func(i, j int) bool { return ds.Genres[i].Name < ds.Genres[j].Name })
	sort.Slice(ds.Publishers, func(i, j int) bool { return ds.Publishers[i].Name < ds.Publishers[j].Name })
	return ds, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Populate adds the dataset to repo: genres, then publishers, then games,
// then users, then reviews. Users already in repo are left alone.
func Populate(ctx context.Context, repo domain.Repository, ds *Dataset) error {
	if err := repo.AddMultipleGenres(ctx, ds.Genres); err != nil {
		return fmt.Errorf("populate genres: %w", err)
	}
	if err := repo.AddMultiplePublishers(ctx, ds.Publishers); err != nil {
		return fmt.Errorf("populate publishers: %w", err)
	}
	if err := repo.AddMultipleGames(ctx, ds.Games); err != nil {
		return fmt.Errorf("populate games: %w", err)
	}
	for _, u := range ds.Users {
		existing, err := repo.GetUser(ctx, u.Username)
		if err != nil {
			return fmt.Errorf("populate users: %w", err)
		}
		if existing != nil {
			continue
		}
		if err := repo.AddUser(ctx, u); err != nil {
			return fmt.Errorf("populate users: %w", err)
		}
	}
	if err := repo.AddMultipleReviews(ctx, ds.Reviews); err != nil {
		return fmt.Errorf("populate reviews: %w", err)
	}
	return nil
}
