package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/haedavja/hahahahgo/internal/constants"
	"github.com/haedavja/hahahahgo/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthHandler struct {
	repo storage.Repository
}

func NewAuthHandler(repo storage.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type googleOAuthCallbackRequest struct {
	Code string `json:"code"`
}

// GoogleOAuthCallback exchanges the one-time code for a Google profile, mints
// a session cookie and upserts the player record.
func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	var req googleOAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	clientID := os.Getenv(constants.EnvGoogleClientID)
	clientSecret := os.Getenv(constants.EnvGoogleClientSecret)
	if clientID == "" || clientSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingGoogleEnv})
		return
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  constants.GoogleOAuthRedirect,
		Scopes:       constants.GoogleUserInfoScopes,
		Endpoint:     google.Endpoint,
	}

	token, err := conf.Exchange(context.Background(), req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrFailedExchangeToken, constants.JSONKeyDetails: err.Error()})
		return
	}

	resp, err := conf.Client(context.Background(), token).Get(constants.GoogleUserInfoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo, constants.JSONKeyDetails: err.Error()})
		return
	}
	defer resp.Body.Close()

	userData, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo})
		return
	}

	var payload map[string]any
	_ = json.Unmarshal(userData, &payload)
	email, _ := payload["email"].(string)
	name, _ := payload["name"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrNoEmailInGoogleProfile})
		return
	}

	// Prefer a server-stored display name when the player edited it.
	nameToUse := name
	if h.repo != nil {
		if ps, err := h.repo.GetStatsByEmail(email); err == nil && ps != nil && ps.PlayerName != "" {
			nameToUse = ps.PlayerName
		}
		_ = h.repo.UpsertUser(email, uuid.NewString(), nameToUse)
	}

	if err := issueSessionCookie(c, email, nameToUse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}

	out := gin.H{"email": email, "name": nameToUse}
	if pic, ok := payload["picture"].(string); ok && pic != "" {
		out["picture"] = pic
	}
	c.JSON(http.StatusOK, out)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}
