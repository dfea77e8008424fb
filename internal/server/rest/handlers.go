package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/edora/internal/common"
	"github.com/dmitrijs2005/edora/internal/logging"
	"github.com/dmitrijs2005/edora/internal/server/models"
	"github.com/dmitrijs2005/edora/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
)

const internalErrorMessage = "internal server error"

// maxRequestBodySize caps JSON and form bodies at 1 MB.
const maxRequestBodySize = 1 << 20

type SubjectStore interface {
	List(ctx context.Context) ([]*models.Subject, error)
	Create(ctx context.Context, s *models.Subject) (*models.Subject, error)
	Update(ctx context.Context, id int64, s *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

type ThemeStore interface {
	List(ctx context.Context) ([]*models.Theme, error)
	Create(ctx context.Context, t *models.Theme) (*models.Theme, error)
	Update(ctx context.Context, id int64, t *models.Theme) error
	Delete(ctx context.Context, id int64) error
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
}

type InfoReader interface {
	DBVersion(ctx context.Context) (string, error)
}

// Handler serves the HTTP API. Build one with NewHandler and mount Router().
type Handler struct {
	logger   logging.Logger
	subjects SubjectStore
	themes   ThemeStore
	auth     Authenticator
	info     InfoReader
	tokens   TokenVerifier
	validate *validator.Validate
	metrics  *Metrics
	origins  []string
	registry *prometheus.Registry
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type infoResponse struct {
	DBVersion string `json:"db_version"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	v, err := h.info.DBVersion(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, infoResponse{DBVersion: v})
}

// handleLogin accepts an OAuth2 password form or a JSON body.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := h.decode(r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.writeError(w, r, fmt.Errorf("%w: %w", common.ErrorValidation, err))
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		if err := h.validate.Struct(&req); err != nil {
			h.writeError(w, r, fmt.Errorf("%w: %w", common.ErrorValidation, err))
			return
		}
	}

	pair, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "admin logged in", "username", req.Username)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: pair.AccessToken, TokenType: pair.TokenType})
}

func (h *Handler) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[*models.Subject]{Data: subjects})
}

func (h *Handler) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var s models.Subject
	if err := h.decode(r, &s); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.subjects.Create(r.Context(), &s)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "subject created", "id", created.ID)
	writeMessage(w, http.StatusOK, "subject created")
}

func (h *Handler) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var s models.Subject
	if err := h.decode(r, &s); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.subjects.Update(r.Context(), id, &s); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "subject updated")
}

func (h *Handler) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.subjects.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "subject deleted")
}

func (h *Handler) handleListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themes.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[*models.Theme]{Data: themes})
}

func (h *Handler) handleCreateTheme(w http.ResponseWriter, r *http.Request) {
	var t models.Theme
	if err := h.decode(r, &t); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.themes.Create(r.Context(), &t)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "theme created", "id", created.ID, "subject_id", created.SubjectID)
	writeMessage(w, http.StatusOK, "theme created")
}

func (h *Handler) handleUpdateTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var t models.Theme
	if err := h.decode(r, &t); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.themes.Update(r.Context(), id, &t); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "theme updated")
}

func (h *Handler) handleDeleteTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.themes.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "theme deleted")
}

// decode reads a JSON body into dst and validates it. Every failure
// wraps common.ErrorValidation.
func (h *Handler) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %w", common.ErrorValidation, err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	return nil
}

// pathID parses {id}. Anything but a positive integer is answered with 404
// since no such resource can exist.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusNotFound, common.ErrorNotFound.Error())
		return 0, false
	}
	return id, true
}

// writeError maps a service error onto a status code. Causes of 500s are
// logged and never sent to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusUnprocessableEntity, validationMessage(err))
	case errors.Is(err, common.ErrBadCredentials):
		writeMessage(w, http.StatusBadRequest, common.ErrBadCredentials.Error())
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		writeMessage(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, common.ErrSubjectReferenceNotFound):
		writeMessage(w, http.StatusNotFound, common.ErrSubjectReferenceNotFound.Error())
	case errors.Is(err, common.ErrSubjectNotFound):
		writeMessage(w, http.StatusNotFound, common.ErrSubjectNotFound.Error())
	case errors.Is(err, common.ErrThemeNotFound):
		writeMessage(w, http.StatusNotFound, common.ErrThemeNotFound.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, common.ErrorNotFound.Error())
	default:
		h.logger.Error(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFromContext(r.Context()),
		)
		writeMessage(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("%s: failed on '%s'", verrs[0].Field(), verrs[0].Tag())
	}
	return "malformed request body"
}
