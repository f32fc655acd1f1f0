package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

const favoritesCollection = "movieapp_favorites"

func favoritesKey(userID string) string {
	return favoritesCollection + "/" + userID
}

// FavoritesStore keeps each user's saved movies as one JSON array.
type FavoritesStore struct {
	kv     KV
	logger *slog.Logger
	now    func() time.Time
}

// NewFavoritesStore creates a FavoritesStore on top of kv.
func NewFavoritesStore(kv KV, logger *slog.Logger) *FavoritesStore {
	return &FavoritesStore{kv: kv, logger: logger, now: time.Now}
}

// Add saves movie as a favorite of userID. If the pair is already saved the
// stored entry is returned as is; its snapshot is not refreshed.
func (s *FavoritesStore) Add(ctx context.Context, userID string, movieID int, movie Movie) (FavoriteEntry, error) {
	key := favoritesKey(userID)
	var result FavoriteEntry

	err := Update(ctx, s.kv, key, func(current []byte) ([]byte, error) {
		entries, err := decodeFavorites(key, current)
		if err != nil {
			return nil, err
		}

		for _, e := range entries {
			if e.UserID == userID && e.MovieID == movieID {
				result = e
				return nil, errNoChange
			}
		}

		result = FavoriteEntry{
			UserID:       userID,
			MovieID:      movieID,
			Title:        movie.Title,
			PosterPath:   movie.PosterPath,
			BackdropPath: movie.BackdropPath,
			Overview:     movie.Overview,
			VoteAverage:  movie.VoteAverage,
			ReleaseDate:  movie.ReleaseDate,
			AddedAt:      s.now().UTC(),
		}
		return encode(key, append(entries, result))
	})
	if err != nil {
		return FavoriteEntry{}, err
	}

	return result, nil
}

// Delete removes the (userID, movieID) pair. A missing pair is not an error.
func (s *FavoritesStore) Delete(ctx context.Context, userID string, movieID int) error {
	key := favoritesKey(userID)

	return Update(ctx, s.kv, key, func(current []byte) ([]byte, error) {
		entries, err := decodeFavorites(key, current)
		if err != nil {
			return nil, err
		}

		filtered := make([]FavoriteEntry, 0, len(entries))
		for _, e := range entries {
			if e.UserID == userID && e.MovieID == movieID {
				continue
			}
			filtered = append(filtered, e)
		}
		return encode(key, filtered)
	})
}

// Remove is Delete with storage failures logged instead of returned.
func (s *FavoritesStore) Remove(ctx context.Context, userID string, movieID int) {
	if err := s.Delete(ctx, userID, movieID); err != nil {
		s.logger.Warn("remove favorite failed", "error", err, "userId", userID, "movieId", movieID)
	}
}

// Favorites returns userID's favorites in the order they were saved.
func (s *FavoritesStore) Favorites(ctx context.Context, userID string) ([]FavoriteEntry, error) {
	key := favoritesKey(userID)

	item, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []FavoriteEntry{}, nil
	}
	if err != nil {
		return nil, storageErr("get", key, err)
	}

	entries, err := decodeFavorites(key, item.Value)
	if err != nil {
		return nil, err
	}

	result := make([]FavoriteEntry, 0, len(entries))
	for _, e := range entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ListForUser is Favorites with failures reported as an empty list.
func (s *FavoritesStore) ListForUser(ctx context.Context, userID string) []FavoriteEntry {
	entries, err := s.Favorites(ctx, userID)
	if err != nil {
		s.logger.Warn("list favorites failed", "error", err, "userId", userID)
		return []FavoriteEntry{}
	}
	return entries
}

// IsFavorited reports whether userID saved movieID. Failures read as false.
func (s *FavoritesStore) IsFavorited(ctx context.Context, userID string, movieID int) bool {
	for _, e := range s.ListForUser(ctx, userID) {
		if e.MovieID == movieID {
			return true
		}
	}
	return false
}

func decodeFavorites(key string, data []byte) ([]FavoriteEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []FavoriteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, storageErr("decode", key, err)
	}
	return entries, nil
}

func encode(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, storageErr("encode", key, err)
	}
	return data, nil
}
