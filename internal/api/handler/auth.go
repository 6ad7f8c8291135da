package handler

import (
	"net/http"
	"strings"
	"time"

	"nyayadhaar/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const profileContextKey = "profile"

// generateJWT issues an HS256 token carrying the profile id and role.
func (h *Handler) generateJWT(profile *models.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":  profile.ID,
		"role": profile.Role,
		"exp":  time.Now().Add(72 * time.Hour).Unix(),
		"iss":  "nyayadhaar-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

func (h *Handler) parseJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sub, nil
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

// Signup registers a beneficiary account. The role is always user; officer
// accounts are provisioned with the admin CLI, never through the API.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	existing, err := h.Storage.GetProfileByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup_failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_used"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup_failed"})
		return
	}

	profile := &models.Profile{
		Email:              req.Email,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		Role:               models.RoleUser,
		LanguagePreference: "en",
	}
	if req.Phone != "" {
		profile.Phone = &req.Phone
	}
	if err := h.Storage.SaveProfile(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup_failed"})
		return
	}

	token, err := h.generateJWT(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "profile": profile})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by email and password and issues a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_credentials"})
		return
	}

	profile, err := h.Storage.GetProfileByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login_failed"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateJWT(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": profile})
}

// RequireAuth validates the bearer token and loads the caller's profile into
// the request context. The profile (id and role) is trusted verbatim from
// here on.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := h.profileFromToken(bearerToken(c))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}
		c.Set(profileContextKey, profile)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	// Browsers cannot set headers on websocket upgrades; allow ?token=.
	return c.Query("token")
}

func (h *Handler) profileFromToken(tokenString string) (*models.Profile, bool) {
	if tokenString == "" {
		return nil, false
	}
	profileID, err := h.parseJWT(tokenString)
	if err != nil {
		return nil, false
	}
	profile, err := h.Storage.GetProfileByID(profileID)
	if err != nil || profile == nil {
		return nil, false
	}
	return profile, true
}

// currentProfile returns the authenticated profile stored by RequireAuth.
func currentProfile(c *gin.Context) *models.Profile {
	v, _ := c.Get(profileContextKey)
	profile, _ := v.(*models.Profile)
	return profile
}
