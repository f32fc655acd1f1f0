package main

import (
	"errors"
	"net/http"
)

// ListFavorites returns the user's favorites in the order they were saved.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	entries, err := h.favorites.Favorites(r.Context(), userID)
	if err != nil {
		h.requestLogger(r).Error("favorites.Favorites failed", "error", err, "userId", userID)
		writeError(w, http.StatusInternalServerError, "failed to retrieve favorites")
		return
	}

	writeJSON(w, http.StatusOK, FavoritesResponse{UserID: userID, Favorites: entries})
}

// AddFavorite saves a movie. Without a snapshot in the body the movie is
// looked up in the metadata source.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req AddFavoriteRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	var movie Movie
	switch {
	case req.Movie != nil:
		movie = *req.Movie
	case h.movies == nil:
		writeError(w, http.StatusBadRequest, "movie snapshot required")
		return
	default:
		m, err := h.movies.Movie(r.Context(), req.MovieID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "movie not found")
			return
		}
		if err != nil {
			h.requestLogger(r).Error("movie lookup failed", "error", err, "movieId", req.MovieID)
			writeError(w, http.StatusBadGateway, "movie metadata unavailable")
			return
		}
		movie = m
	}

	entry, err := h.favorites.Add(r.Context(), userID, req.MovieID, movie)
	if err != nil {
		h.requestLogger(r).Error("favorites.Add failed", "error", err, "userId", userID, "movieId", req.MovieID)
		writeError(w, http.StatusInternalServerError, "failed to save favorite")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// GetFavorite reports whether a movie is among the user's favorites.
func (h *Handler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, FavoriteStatusResponse{
		MovieID:   movieID,
		Favorited: h.favorites.IsFavorited(r.Context(), userID, movieID),
	})
}

// RemoveFavorite deletes a favorite. Removing a movie that is not saved succeeds.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	if err := h.favorites.Delete(r.Context(), userID, movieID); err != nil {
		h.requestLogger(r).Error("favorites.Delete failed", "error", err, "userId", userID, "movieId", movieID)
		writeError(w, http.StatusInternalServerError, "failed to remove favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
