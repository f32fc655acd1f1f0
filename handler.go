package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Handler holds dependencies for the favorites and profile handlers.
type Handler struct {
	favorites *FavoritesStore
	profiles  *ProfileStore
	movies    MovieSource
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a new handler. movies may be nil, in which case
// favorites must be added with their movie snapshot.
func NewHandler(favorites *FavoritesStore, profiles *ProfileStore, movies MovieSource, logger *slog.Logger) *Handler {
	return &Handler{
		favorites: favorites,
		profiles:  profiles,
		movies:    movies,
		validate:  validator.New(),
		logger:    logger,
	}
}

// authorize checks that the JWT subject matches the requested userId.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.PathValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing userId")
		return "", false
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing claims")
		return "", false
	}

	if claims.Subject != userID {
		writeError(w, http.StatusForbidden, "access denied")
		return "", false
	}

	return userID, true
}

// decodeBody decodes and validates a JSON request body into v.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, "invalid field: "+verrs[0].Field())
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

func movieIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("movieId"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid movieId")
		return 0, false
	}
	return id, true
}

// requestLogger returns the handler logger tagged with the request id.
func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With("requestId", RequestIDFromContext(r.Context()))
}
