package http

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/crumbly/internal/user/usecase/command"
	"github.com/tair/crumbly/internal/user/usecase/query"
	"github.com/tair/crumbly/pkg/apperror"
	"github.com/tair/crumbly/pkg/httpx"
	"github.com/tair/crumbly/pkg/logger"
	"github.com/tair/crumbly/pkg/storage"
)

// multipartMemory is the part of an upload kept in memory before spilling to disk
const multipartMemory = 1 << 20

var (
	errUploadTooLarge = apperror.Validation("Upload exceeds the size limit").WithCode(http.StatusRequestEntityTooLarge)
	errPhotoNotFound  = apperror.NotFound("Photo not found")
)

// SessionConfig controls the session cookie and upload limits
type SessionConfig struct {
	CookieName     string
	CookieSecure   bool
	TokenTTL       time.Duration
	MaxUploadBytes int64
}

// UserHandler handles HTTP requests for registration and sessions
type UserHandler struct {
	// Command handlers
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler

	// Query handlers
	sessionHandler *query.GetSessionHandler
	countHandler   *query.CountUsersHandler

	photos          storage.PhotoStorage
	cfg             SessionConfig
	registeredUsers prometheus.Gauge
}

// NewUserHandler creates a new user handler and registers its gauge
func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	sessionHandler *query.GetSessionHandler,
	countHandler *query.CountUsersHandler,
	photos storage.PhotoStorage,
	cfg SessionConfig,
	reg prometheus.Registerer,
) *UserHandler {
	registeredUsers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_registered_users",
			Help: "Number of registered users",
		},
	)
	reg.MustRegister(registeredUsers)

	return &UserHandler{
		registerHandler: registerHandler,
		loginHandler:    loginHandler,
		sessionHandler:  sessionHandler,
		countHandler:    countHandler,
		photos:          photos,
		cfg:             cfg,
		registeredUsers: registeredUsers,
	}
}

// LoginRequest is the body of POST /userLogin
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Status  string      `json:"Status"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    interface{} `json:"user"`
}

// SessionResponse is returned by GET /me
type SessionResponse struct {
	Status string      `json:"Status"`
	User   interface{} `json:"user"`
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/registerUser", httpx.Handle(h.Register)).Methods(http.MethodPost)
	router.HandleFunc("/userLogin", httpx.Handle(h.Login)).Methods(http.MethodPost)
	router.HandleFunc("/logout", httpx.Handle(h.Logout)).Methods(http.MethodGet)
	router.HandleFunc("/photos/{name}", h.Photo).Methods(http.MethodGet)

	router.Handle("/me", AuthMiddleware(h.sessionHandler, h.cfg.CookieName)(httpx.Handle(h.Me))).Methods(http.MethodGet)
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param photo formData file false "Profile photo"
// @Success 200 {object} httpx.StatusResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /registerUser [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	if h.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return 0, nil, errUploadTooLarge
		case errors.Is(err, http.ErrNotMultipart):
			if err := r.ParseForm(); err != nil {
				return 0, nil, apperror.Validation("Invalid form data").Wrap(err)
			}
		default:
			return 0, nil, apperror.Validation("Invalid form data").Wrap(err)
		}
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	cmd := command.RegisterUserCommand{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	file, photo, err := formPhoto(r)
	if err != nil {
		return 0, nil, err
	}
	if file != nil {
		defer file.Close()
		cmd.Photo = photo
	}

	if _, err := h.registerHandler.Handle(r.Context(), cmd); err != nil {
		return 0, nil, err
	}

	h.RefreshRegisteredUsers(r.Context())
	return http.StatusOK, httpx.StatusResponse{
		Status:  httpx.StatusSuccess,
		Message: "User successfully registered!",
	}, nil
}

// formPhoto returns the optional "photo" file part
func formPhoto(r *http.Request) (multipart.File, *command.Photo, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}

	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, apperror.Validation("Invalid photo upload").Wrap(err)
	}

	return file, &command.Photo{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, nil
}

// Login godoc
// @Summary Log in and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /userLogin [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return 0, nil, err
	}

	result, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return 0, nil, err
	}

	http.SetCookie(w, h.sessionCookie(result.Token, h.cfg.TokenTTL))
	return http.StatusOK, LoginResponse{
		Status:  httpx.StatusSuccess,
		Message: "Login successful!",
		Token:   result.Token,
		User:    result.User,
	}, nil
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} httpx.StatusResponse
// @Router /logout [get]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	http.SetCookie(w, h.sessionCookie("", -1))
	return http.StatusOK, httpx.StatusResponse{
		Status:  httpx.StatusSuccess,
		Message: "Logged out successfully!",
	}, nil
}

// Me godoc
// @Summary Return the signed-in user
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		return 0, nil, query.ErrNotAuthenticated
	}
	return http.StatusOK, SessionResponse{Status: httpx.StatusSuccess, User: identity}, nil
}

// Photo godoc
// @Summary Download an uploaded profile photo
// @Tags auth
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Param name path string true "Photo name"
// @Success 200 {file} binary
// @Failure 404 {object} httpx.ErrorResponse
// @Router /photos/{name} [get]
func (h *UserHandler) Photo(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if !storage.IsAllowedImage(name) {
		httpx.RespondError(w, r, errPhotoNotFound)
		return
	}

	object, err := h.photos.Open(r.Context(), name)
	if errors.Is(err, storage.ErrObjectNotFound) {
		httpx.RespondError(w, r, errPhotoNotFound)
		return
	}
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	defer object.Close()

	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, object); err != nil {
		logger.Warn(r.Context()).Err(err).Str("photo", name).Msg("Failed to stream photo")
	}
}

// RefreshRegisteredUsers updates the registered users gauge
func (h *UserHandler) RefreshRegisteredUsers(ctx context.Context) {
	count, err := h.countHandler.Handle(ctx)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to refresh registered users gauge")
		return
	}
	h.registeredUsers.Set(float64(count))
}

func (h *UserHandler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(maxAge / time.Second)
	}
	return cookie
}
