package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/httpresp"
	"github.com/fluxoapp/fluxo-api/internal/models"
	"github.com/fluxoapp/fluxo-api/internal/storage"
)

type ProfessionalHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStorage // nil quando S3 não está configurado
}

func NewProfessionalHandler(db *gorm.DB, photos *storage.PhotoStorage) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, photos: photos}
}

type ProfessionalRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type QualificationRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	_, businessID := tenant(c)

	var pros []models.Professional
	if err := h.db.
		Preload("Services").
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&pros).Error; err != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, pros)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	_, businessID := tenant(c)

	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	pro := models.Professional{
		BusinessID: businessID,
		Name:       req.Name,
		Phone:      req.Phone,
		Active:     true,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, pro)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	_, businessID := tenant(c)

	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND business_id = ?", professionalID, businessID).
		Delete(&models.Professional{})
	if res.Error != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao apagar profissional.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// --------------------------------------------------
// Qualificação (professional_services)
// --------------------------------------------------

func (h *ProfessionalHandler) AddService(c *gin.Context) {
	_, businessID := tenant(c)

	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req QualificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "O ID do serviço (service_id) é obrigatório.")
		return
	}

	// ambos precisam existir no tenant
	var pro models.Professional
	if err := h.db.
		Where("id = ? AND business_id = ?", professionalID, businessID).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND business_id = ?", req.ServiceID, businessID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	link := models.ProfessionalService{
		ProfessionalID: professionalID,
		ServiceID:      req.ServiceID,
	}

	if err := h.db.Create(&link).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, "already_linked", "Este serviço já está associado a este profissional.")
			return
		}
		httperr.Unavailable(c, "storage_error", "Erro ao associar serviço.")
		return
	}

	httpresp.Created(c, link)
}

func (h *ProfessionalHandler) RemoveService(c *gin.Context) {
	_, businessID := tenant(c)

	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	serviceID, err := uuid.Parse(c.Param("serviceID"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND business_id = ?", professionalID, businessID).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	res := h.db.
		Where("professional_id = ? AND service_id = ?", professionalID, serviceID).
		Delete(&models.ProfessionalService{})
	if res.Error != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao remover associação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "link_not_found", "Associação não encontrada.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// --------------------------------------------------
// Foto (S3 + webp)
// --------------------------------------------------

func (h *ProfessionalHandler) UploadPhoto(c *gin.Context) {
	_, businessID := tenant(c)

	if h.photos == nil {
		httperr.BadRequest(c, "photos_disabled", "Armazenamento de fotos não configurado.")
		return
	}

	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND business_id = ?", professionalID, businessID).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Arquivo de foto obrigatório (campo photo).")
		return
	}
	defer file.Close()

	url, err := h.photos.UploadProfessionalPhoto(c.Request.Context(), professionalID, file)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Não foi possível processar a foto.")
		return
	}

	pro.PhotoURL = url
	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao salvar foto.")
		return
	}

	httpresp.OK(c, pro)
}
