package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ideagauge/ideagauge/internal/api/middleware"
	"github.com/ideagauge/ideagauge/internal/api/response"
	"github.com/ideagauge/ideagauge/internal/store"
	"github.com/ideagauge/ideagauge/pkg/models"
)

const maxAvatarBytes = 2 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UserGetter loads an account by id.
type UserGetter interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ProfileUpdater applies profile changes for an account.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, avatar string) (*models.User, error)
}

// NewMeHandler returns an http.HandlerFunc for GET /api/v1/auth/me.
func NewMeHandler(users UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not logged in", nil)
			return
		}

		user, err := users.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not logged in", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, user)
	}
}

// NewUpdateProfileHandler returns an http.HandlerFunc for PUT /api/v1/auth/profile.
// The request is multipart form data with an optional "name" field and an
// optional "avatar" image part (jpeg, png, or webp, up to 2MB). Uploaded
// avatars are written under uploadDir and served from /uploads/.
func NewUpdateProfileHandler(svc ProfileUpdater, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not logged in", nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+64<<10)
		if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
			response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				"Avatar exceeds the 2MB upload limit", nil)
			return
		}

		avatarPath := ""
		if file, header, err := r.FormFile("avatar"); err == nil {
			defer file.Close()

			ext, supported := avatarExtensions[header.Header.Get("Content-Type")]
			if !supported {
				response.Error(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE",
					"Avatar must be a JPEG, PNG, or WebP image", nil)
				return
			}

			avatarPath, err = saveAvatar(file, uploadDir, userID, ext)
			if err != nil {
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"Could not store the avatar", nil)
				return
			}
		}

		user, err := svc.UpdateProfile(r.Context(), userID, r.FormValue("name"), avatarPath)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, user)
	}
}

func saveAvatar(file io.Reader, uploadDir string, userID uuid.UUID, ext string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	name := fmt.Sprintf("avatar-%s-%s%s", userID, uuid.NewString()[:8], ext)
	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		return "", fmt.Errorf("creating avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxAvatarBytes)); err != nil {
		return "", fmt.Errorf("writing avatar file: %w", err)
	}
	return "/uploads/" + name, nil
}
