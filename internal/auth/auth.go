package auth

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Missarachnid/sick-fits-backend/configs"
	"github.com/Missarachnid/sick-fits-backend/internal/access"
	"github.com/Missarachnid/sick-fits-backend/internal/db"
	"github.com/Missarachnid/sick-fits-backend/internal/mail"
	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

const sessionUserKey = "user_id"

var (
	jwtSecret   []byte
	emailCfg    config.EmailConfig
	frontendURL string
	sendToken   = defaultSendToken
)

func Init(cfg *config.Config) {
	jwtSecret = []byte(cfg.CookieSecret)
	emailCfg = cfg.Email
	frontendURL = cfg.FrontendURL
}

// SetTokenSender swaps out reset-token delivery; tests use it the same way
// db.SetTestDB swaps the database.
func SetTokenSender(f func(email, token string) error) {
	if f == nil {
		sendToken = defaultSendToken
		return
	}
	sendToken = f
}

func defaultSendToken(email, token string) error {
	resetURL := fmt.Sprintf("%s/reset?token=%s", frontendURL, token)
	return mail.SendPasswordResetEmail(emailCfg, email, resetURL)
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/signin
func SignIn(c *gin.Context) {
	var req SignInRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var user models.User
	if err := db.DB.Preload("Role").First(&user, "email = ?", req.Email).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "signed in", "user": user})
}

// POST /auth/signout
func SignOut(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Delete(sessionUserKey)
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

type InitFirstUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/init bootstraps the very first user. Once any user exists the
// endpoint refuses to run again.
func InitFirstUser(c *gin.Context) {
	var req InitFirstUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	if err := db.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count users"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "initial user already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, user.ID)
	_ = sess.Save()

	c.JSON(http.StatusCreated, gin.H{"message": "initial user created", "user": user})
}

type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/request-reset
//
// Responds identically whether or not the account exists, so the endpoint
// cannot be used to enumerate addresses. Delivery failures are only logged.
func RequestReset(c *gin.Context) {
	var req RequestResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	const reply = "if that account exists, a reset email has been sent"

	var user models.User
	if err := db.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": reply})
		return
	}

	token, err := issueResetToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue reset token"})
		return
	}

	if err := sendToken(user.Email, token); err != nil {
		log.Printf("Failed to send reset email for %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": reply})
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/reset-password
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := parseResetToken(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired reset token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired reset token"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user.Password = string(hash)
	if err := db.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func issueResetToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

func parseResetToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}

// LoadSession resolves the cookie session into an access.Session with the
// user's role attached and stores it on the request context, where the
// GraphQL resolvers and access rules look for it. Anonymous requests pass
// through with no session.
func LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		uid, ok := sess.Get(sessionUserKey).(string)
		if ok && uid != "" {
			var user models.User
			if err := db.DB.Preload("Role").First(&user, "id = ?", uid).Error; err == nil {
				ctx := access.WithSession(c.Request.Context(), &access.Session{
					UserID: user.ID,
					Role:   user.Role,
				})
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}
