package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fluxoapp/fluxo-api/internal/config"
	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/models"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

// AuthHandler é o colaborador de identidade: emite o token de onde o
// tenant (businessId) é derivado em toda requisição autenticada.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	BusinessName string `json:"business_name" binding:"required"`
	Timezone     string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tz := req.Timezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_error", "Erro ao registrar.")
		return
	}

	var user models.User

	err = h.db.Transaction(func(tx *gorm.DB) error {
		biz := models.Business{
			Name:     req.BusinessName,
			Slug:     slugify(req.BusinessName),
			Timezone: tz,
		}
		if err := tx.Create(&biz).Error; err != nil {
			return err
		}

		user = models.User{
			BusinessID:   biz.ID,
			Name:         req.Name,
			Email:        strings.ToLower(req.Email),
			PasswordHash: string(hash),
			Role:         "owner",
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, "already_registered", "E-mail ou nome de negócio já cadastrado.")
			return
		}
		httperr.Unavailable(c, "storage_error", "Erro ao registrar.")
		return
	}

	token, err := h.issueToken(&user)
	if err != nil {
		httperr.Internal(c, "token_error", "Erro ao emitir token.")
		return
	}

	c.JSON(201, gin.H{"token": token, "business_id": user.BusinessID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var user models.User
	if err := h.db.
		Where("email = ?", strings.ToLower(req.Email)).
		First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
		return
	}

	token, err := h.issueToken(&user)
	if err != nil {
		httperr.Internal(c, "token_error", "Erro ao emitir token.")
		return
	}

	c.JSON(200, gin.H{"token": token, "business_id": user.BusinessID})
}

func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID.String(),
		"businessId": user.BusinessID.String(),
		"role":       user.Role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
	return strings.Trim(s, "-")
}
