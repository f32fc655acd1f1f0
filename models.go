package main

import "time"

// Theme is the app colour scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Movie is the metadata snapshot supplied by the movie-metadata API.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title" validate:"max=500"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
}

// FavoriteEntry is a movie saved by a user, with the metadata as it was at save time.
type FavoriteEntry struct {
	UserID       string    `json:"userId"`
	MovieID      int       `json:"movieId"`
	Title        string    `json:"title"`
	PosterPath   string    `json:"poster_path"`
	BackdropPath string    `json:"backdrop_path"`
	Overview     string    `json:"overview"`
	VoteAverage  float64   `json:"vote_average"`
	ReleaseDate  string    `json:"release_date"`
	AddedAt      time.Time `json:"addedAt"`
}

// Preferences are the per-user app settings.
type Preferences struct {
	Notifications bool   `json:"notifications"`
	Theme         Theme  `json:"theme" validate:"oneof=dark light"`
	Language      string `json:"language" validate:"required,max=16"`
}

func defaultPreferences() Preferences {
	return Preferences{Notifications: true, Theme: ThemeDark, Language: "en"}
}

// UserProfile is the single per-user profile record.
type UserProfile struct {
	UserID        string      `json:"userId"`
	Username      string      `json:"username"`
	Email         string      `json:"email"`
	Bio           string      `json:"bio"`
	FavoriteGenre string      `json:"favoriteGenre"`
	Watchlist     []string    `json:"watchlist"`
	Preferences   Preferences `json:"preferences"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// ProfileUpdate carries the top-level profile fields to overwrite.
// Nil fields are left untouched; Preferences replaces the whole object.
type ProfileUpdate struct {
	Username      *string      `json:"username,omitempty" validate:"omitempty,max=64"`
	Email         *string      `json:"email,omitempty" validate:"omitempty,max=254"`
	Bio           *string      `json:"bio,omitempty" validate:"omitempty,max=500"`
	FavoriteGenre *string      `json:"favoriteGenre,omitempty" validate:"omitempty,max=64"`
	Watchlist     []string     `json:"watchlist,omitempty" validate:"omitempty,dive,numeric"`
	Preferences   *Preferences `json:"preferences,omitempty"`
}

func (u ProfileUpdate) applyTo(p *UserProfile) {
	if u.Username != nil {
		p.Username = *u.Username
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.FavoriteGenre != nil {
		p.FavoriteGenre = *u.FavoriteGenre
	}
	if u.Watchlist != nil {
		p.Watchlist = append([]string{}, u.Watchlist...)
	}
	if u.Preferences != nil {
		p.Preferences = *u.Preferences
	}
}

// PreferencesUpdate carries individual preference fields to merge.
type PreferencesUpdate struct {
	Notifications *bool   `json:"notifications,omitempty"`
	Theme         *Theme  `json:"theme,omitempty" validate:"omitempty,oneof=dark light"`
	Language      *string `json:"language,omitempty" validate:"omitempty,max=16"`
}

func (u PreferencesUpdate) mergeInto(p Preferences) Preferences {
	if u.Notifications != nil {
		p.Notifications = *u.Notifications
	}
	if u.Theme != nil {
		p.Theme = *u.Theme
	}
	if u.Language != nil {
		p.Language = *u.Language
	}
	return p
}

// Identity is what the identity provider knows about a user.
type Identity struct {
	Username string
	Email    string
}

// AddFavoriteRequest is the body of POST .../favorites. Movie may be omitted
// when a metadata source is configured.
type AddFavoriteRequest struct {
	MovieID int    `json:"movieId" validate:"required,gt=0"`
	Movie   *Movie `json:"movie,omitempty"`
}

// FavoriteGenreRequest is the body of PUT .../profile/favorite-genre.
type FavoriteGenreRequest struct {
	FavoriteGenre string `json:"favoriteGenre" validate:"max=64"`
}

// FavoritesResponse is returned for favorites listings.
type FavoritesResponse struct {
	UserID    string          `json:"userId"`
	Favorites []FavoriteEntry `json:"favorites"`
}

// FavoriteStatusResponse is returned for single-movie favorite checks.
type FavoriteStatusResponse struct {
	MovieID   int  `json:"movieId"`
	Favorited bool `json:"favorited"`
}
