package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bluecotton/somboard/models"
	"github.com/bluecotton/somboard/utils"
)

const tokenDuration = 24 * time.Hour

// AuthController is the identity collaborator: it turns credentials into an
// acting member id carried by a bearer token. Nothing else in the service
// knows how identity is established.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register creates a member account.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=64"`
		Email    string `json:"email" binding:"omitempty,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to hash password")
		return
	}

	member := models.Member{Username: username, Email: req.Email, PasswordHash: hash}
	if err := a.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40910, "username already taken")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to create member")
		return
	}

	utils.Success(ctx, gin.H{"member_id": member.ID})
}

// Login verifies credentials and issues a bearer token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid request payload")
		return
	}

	var member models.Member
	if err := a.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&member).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}
	if !utils.CheckPassword(member.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(member.ID, member.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "member": member})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 {
		token := strings.TrimSpace(parts[1])
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the acting member's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "unauthorized")
		return
	}
	var member models.Member
	if err := a.db.First(&member, memberID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "member not found")
		return
	}
	utils.Success(ctx, gin.H{"member": member})
}
