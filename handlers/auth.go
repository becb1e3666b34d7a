package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"pizza-club-api/middleware"
	"pizza-club-api/models"
)

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new member account. The username is derived, not
// chosen: first initial + last name, lowercased.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := models.DeriveUsername(req.FirstName, req.LastName)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First and last name must contain letters"})
		return
	}

	var existing models.Member
	if result := db.Where("username = ?", username).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username '" + username + "' is already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	member := models.Member{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     username,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}

	if err := db.Create(&member).Error; err != nil {
		// The unique index is the authority; the pre-check above only makes
		// the common case friendlier.
		c.JSON(http.StatusConflict, gin.H{"error": "Username '" + username + "' is already taken"})
		return
	}

	token, err := middleware.GenerateToken(&member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Welcome to the club",
		"token":   token,
		"member": gin.H{
			"id":       member.ID,
			"username": member.Username,
			"name":     member.FirstName + " " + member.LastName,
		},
	})
}

// Login authenticates a member and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var member models.Member
	if err := db.Where("username = ?", req.Username).First(&member).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := middleware.GenerateToken(&member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"member": gin.H{
			"id":       member.ID,
			"username": member.Username,
			"name":     member.FirstName + " " + member.LastName,
			"is_admin": member.IsAdmin,
		},
	})
}

// GetProfile returns the authenticated member's record
func GetProfile(c *gin.Context) {
	memberID := middleware.GetMemberID(c)
	var member models.Member
	if err := db.First(&member, memberID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}
