package user

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/mail"
	"github.com/dmartinezh/poketeams/internal/middleware"
	"github.com/dmartinezh/poketeams/pkg/apperr"
	"github.com/dmartinezh/poketeams/pkg/responses"
	"github.com/dmartinezh/poketeams/pkg/token"
	"github.com/dmartinezh/poketeams/pkg/utils"
	"github.com/dmartinezh/poketeams/pkg/validator"
)

// UserController handles registration, login and account management.
type UserController struct {
	repo   UserRepository
	mailer *mail.Mailer
	config *config.Config
}

// NewUserController creates a new UserController.
func NewUserController(repo UserRepository, mailer *mail.Mailer, cfg *config.Config) *UserController {
	return &UserController{
		repo:   repo,
		mailer: mailer,
		config: cfg,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	LastName string `json:"lastName" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]UserResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Router /users [post]
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "HASH_ERROR", "Failed to process password", err))
		return
	}

	u := &User{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: hashed,
		Role:     RoleUser,
	}
	if err := uc.repo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			responses.SendError(c, apperr.New(apperr.Conflict, "ALREADY_EXIST", "Email is already registered"))
			return
		}
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to register user", err))
		return
	}

	log.Printf("User %s registered successfully.", u.Name)

	// Fire-and-forget; a failed welcome email never fails registration.
	go uc.mailer.SendWelcomeEmail(u.Email, u.Name)

	c.JSON(http.StatusCreated, gin.H{"user": u.ToResponse()})
}

// Login godoc
// @Summary Authenticate a user
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /users/login [post]
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	u, err := uc.repo.GetByEmail(req.Email)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to authenticate user", err))
		return
	}

	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		log.Printf("Login attempt failed for email: %s", req.Email)
		responses.SendError(c, apperr.New(apperr.Unauthenticated, "INVALID_CREDENTIALS", "Invalid credentials"))
		return
	}

	signed, err := token.GenerateJWT(u.ID, u.TokenVersion, uc.config.JWT.Secret, uc.config.JWT.ExpiryHours)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "TOKEN_ERROR", "Failed to issue token", err))
		return
	}

	log.Printf("User %s logged in successfully", u.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   signed,
		"user":    u.ToResponse(),
	})
}

// GetUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]UserResponse}
// @Router /users [get]
// @Security BearerAuth
func (uc *UserController) GetUsers(c *gin.Context) {
	page, limit := responses.ParsePageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	users, total, err := uc.repo.List(page, limit)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to retrieve users", err))
		return
	}

	data := make([]UserResponse, 0, len(users))
	for i := range users {
		data = append(data, users[i].ToResponse())
	}
	responses.SendPaginated(c, data, page, limit, total)
}

// GetUserByID godoc
// @Summary Get a user by ID
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /users/{id} [get]
// @Security BearerAuth
func (uc *UserController) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, apperr.New(apperr.Validation, "INVALID_REQUEST", "Invalid user ID format"))
		return
	}

	u, err := uc.repo.GetByID(uint(id))
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to retrieve user", err))
		return
	}
	if u == nil {
		responses.SendError(c, apperr.New(apperr.NotFound, "NOT_FOUND", "User not found"))
		return
	}

	c.JSON(http.StatusOK, u.ToResponse())
}

// Logout godoc
// @Summary Invalidate all of the caller's sessions
// @Description Bumps the token version, invalidating every previously issued token
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]string
// @Router /users/logout [post]
// @Security BearerAuth
func (uc *UserController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Unauthenticated, "AUTHENTICATION_ERROR", "Authentication required", err))
		return
	}

	if err := uc.repo.BumpTokenVersion(userID); err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to invalidate sessions", err))
		return
	}

	log.Printf("User %d invalidated all sessions", userID)
	c.JSON(http.StatusOK, gin.H{"message": "All sessions invalidated"})
}

// CreateAdminUser godoc
// @Summary Create or promote an admin account
// @Description If the email exists the account is promoted to admin, otherwise a new admin is created
// @Tags Admin
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Admin account data"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} responses.ErrorResponse "Admin access required"
// @Router /admin/users [post]
// @Security BearerAuth
func (uc *UserController) CreateAdminUser(c *gin.Context) {
	adminID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Unauthenticated, "AUTHENTICATION_ERROR", "Authentication required", err))
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	existing, err := uc.repo.GetByEmail(req.Email)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to create admin user", err))
		return
	}

	var admin *User
	if existing != nil {
		existing.Role = RoleAdmin
		if err := uc.repo.Update(existing); err != nil {
			responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to promote admin user", err))
			return
		}
		admin = existing
	} else {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			responses.SendError(c, apperr.Wrap(apperr.Internal, "HASH_ERROR", "Failed to process password", err))
			return
		}
		admin = &User{
			Name:     req.Name,
			LastName: req.LastName,
			Email:    req.Email,
			Password: hashed,
			Role:     RoleAdmin,
		}
		if err := uc.repo.Create(admin); err != nil {
			responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to create admin user", err))
			return
		}
	}

	log.Printf("Admin user %s created/updated successfully by admin %d", admin.Email, adminID)
	c.JSON(http.StatusCreated, gin.H{
		"user":    admin.ToResponse(),
		"message": "Admin user created successfully",
	})
}
