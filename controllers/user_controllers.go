package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// ErrNoPermission is returned on role failures inside handlers.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// Register creates a user. The first user ever registered bootstraps the
// system; after that only an admin token may register more.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"` // admin, dispatcher, viewer
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch req.Role {
	case models.RoleAdmin, models.RoleDispatcher, models.RoleViewer:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown role"))
		return
	}

	var userCount int64
	if err := uc.DB.Model(&models.User{}).Count(&userCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if userCount > 0 {
		claims, err := claimsFromHeader(c)
		if err != nil || claims.Role != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login verifies credentials and issues an access/refresh token pair.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	refreshRaw, err := uc.issueRefreshToken(user.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":         token,
		"refresh_token": refreshRaw,
		"user_role":     strings.ToLower(user.Role),
	})
}

// Refresh rotates a refresh token: the presented token is retired and a new
// pair is issued. Presenting an already-rotated token is treated as theft
// and revokes every live token for that user.
func (uc *UserController) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hash := utils.HashRefreshToken(input.RefreshToken)

	var row models.RefreshToken
	if err := uc.DB.Where("token_hash = ?", hash).First(&row).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid refresh token"))
		return
	}

	now := time.Now()

	if row.RevokedAt != nil || row.RotatedAt != nil {
		// Reuse of a retired token: revoke the whole chain for this user.
		if err := uc.DB.Model(&models.RefreshToken{}).
			Where("user_id = ? AND revoked_at IS NULL", row.UserID).
			Update("revoked_at", now).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to revoke refresh token chain for user %d: %v", row.UserID, err)
		}
		utils.ErrorLogger.Printf("Refresh token reuse detected for user %d, chain revoked", row.UserID)
		utils.RespondError(c, http.StatusUnauthorized, errors.New("refresh token no longer valid"))
		return
	}

	if now.After(row.ExpiresAt) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("refresh token expired"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, row.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user no longer exists"))
		return
	}

	if err := uc.DB.Model(&row).Update("rotated_at", now).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	refreshRaw, err := uc.issueRefreshToken(user.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{
		"token":         token,
		"refresh_token": refreshRaw,
	})
}

// Logout blacklists the presented access token and revokes the user's
// refresh tokens.
func (uc *UserController) Logout(c *gin.Context) {
	userID := c.GetUint("user_id")

	if tokenString := c.GetString("access_token"); tokenString != "" {
		utils.BlacklistToken(tokenString)
	}

	now := time.Now()
	if err := uc.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile returns the user behind the presented token.
func (uc *UserController) GetProfile(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// GetAllUsers is admin-only.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

func (uc *UserController) issueRefreshToken(userID uint) (string, error) {
	raw, hash := utils.NewRefreshToken()
	row := models.RefreshToken{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(utils.RefreshTokenTTL),
	}
	if err := uc.DB.Create(&row).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// claimsFromHeader parses a bearer token outside the auth middleware, for
// the register bootstrap rule on a public route.
func claimsFromHeader(c *gin.Context) (*utils.CustomClaims, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errors.New("authorization header missing")
	}
	return utils.ParseToken(strings.TrimPrefix(header, "Bearer "))
}
