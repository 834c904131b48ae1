package http

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"account-service/internal/audit"
	"account-service/internal/domain"
	"account-service/internal/service"
	"account-service/internal/storage"
)

// avatarURLTTL bounds how long a presigned avatar link stays valid.
const avatarURLTTL = 15 * time.Minute

// Handler wires HTTP routes to the account service and avatar storage.
type Handler struct {
	accounts    service.AccountService
	recorder    audit.Recorder
	storage     storage.Service
	bucket      string
	keyPrefix   string
	staticDir   string
	tokenSecret string
}

func NewHandler(accounts service.AccountService, recorder audit.Recorder, store storage.Service, bucket, keyPrefix, staticDir, tokenSecret string) *Handler {
	return &Handler{
		accounts:    accounts,
		recorder:    recorder,
		storage:     store,
		bucket:      bucket,
		keyPrefix:   keyPrefix,
		staticDir:   staticDir,
		tokenSecret: tokenSecret,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/tokens", h.login)
		api.POST("/users", h.register)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusAccepted, gin.H{"ok": "ok"})
		})

		authorized := api.Group("", AuthRequired(h.tokenSecret))
		{
			authorized.GET("/users/:username", h.getUser)
			authorized.GET("/users/:username/avatar", h.getAvatar)
			authorized.POST("/avatars", h.uploadAvatar)
		}
	}

	if h.staticDir != "" {
		router.NoRoute(h.landingPage)
	}
}

type registerRequest struct {
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	ProfilePicture string `json:"profilePicture"`
	RegisterDate   string `json:"registerDate"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.accounts.Register(c.Request.Context(), req.Username, req.DisplayName, req.Password, req.ProfilePicture)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Success"})
	case errors.Is(err, service.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.String(http.StatusOK, token)
	case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrInvalidCredentials):
		// uniform response so usernames cannot be probed
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid username and or password"})
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) getUser(c *gin.Context) {
	caller, ok := callerUsername(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user, err := h.accounts.GetUserByUsername(c.Request.Context(), c.Param("username"), caller)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, userToResponse(user))
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrUserNotFound):
		// forbidden reads look identical to missing users
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) getAvatar(c *gin.Context) {
	caller, ok := callerUsername(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user, err := h.accounts.GetUserByUsername(c.Request.Context(), c.Param("username"), caller)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	default:
		h.internalError(c, err)
		return
	}

	if h.storage == nil || h.bucket == "" || user.ProfilePicture == "default" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No avatar"})
		return
	}

	url, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, user.ProfilePicture, avatarURLTTL)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// uploadAvatar stores an image and returns the object key the client passes
// as profilePicture when registering another account, or keeps for itself.
func (h *Handler) uploadAvatar(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	key := path.Join(h.keyPrefix, "avatars", uuid.NewString()+path.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := h.storage.UploadObject(c.Request.Context(), h.bucket, key, src, contentType); err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}

func (h *Handler) landingPage(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.File(filepath.Join(h.staticDir, "index.html"))
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.recorder.Record(fmt.Sprintf("Internal server error: %v", err), audit.SeverityInternalError)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func userToResponse(user *domain.User) userResponse {
	return userResponse{
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		ProfilePicture: user.ProfilePicture,
		RegisterDate:   user.RegisterDate.Format(time.RFC3339),
	}
}
