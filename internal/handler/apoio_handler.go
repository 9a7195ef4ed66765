package handler

import (
	"errors"
	"net/http"

	"github.com/apoiacoletivo/acs/internal/logic"
	"github.com/apoiacoletivo/acs/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApoioHandler serves the campaign endpoints.
type ApoioHandler struct {
	apoioLogic *logic.ApoioLogic
}

// NewApoioHandler creates the campaign handler.
func NewApoioHandler(db *gorm.DB) *ApoioHandler {
	return &ApoioHandler{
		apoioLogic: logic.NewApoioLogic(db),
	}
}

// CreateApoio creates a campaign.
func (h *ApoioHandler) CreateApoio(c *gin.Context) {
	var req CreateApoioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	apoio := &model.ApoioModel{
		Titulo:            req.Titulo,
		Descricao:         req.Descricao,
		Beneficios:        req.Beneficios,
		ImagemURL:         req.ImagemURL,
		MetaValor:         req.MetaValor,
		HandleInfinitepay: req.HandleInfinitepay,
		UserId:            req.UserId,
	}

	if err := h.apoioLogic.CreateApoio(apoio); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Apoio criado com sucesso", GetApoioResponse{
		Apoio: ToApoioResponse(apoio),
	})
}

// GetApoios lists campaigns. A user query parameter narrows the list to
// that owner's campaigns.
func (h *ApoioHandler) GetApoios(c *gin.Context) {
	var (
		apoios []model.ApoioModel
		err    error
	)

	if userId := c.Query("user"); userId != "" {
		apoios, err = h.apoioLogic.ListApoiosByUser(userId)
	} else {
		apoios, err = h.apoioLogic.GetApoios()
	}
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Apoios listados com sucesso", GetApoiosResponse{
		Apoios: ToApoioResponseList(apoios),
	})
}

// GetApoio fetches one campaign.
func (h *ApoioHandler) GetApoio(c *gin.Context) {
	apoio, err := h.apoioLogic.GetApoio(c.Param("id"))
	if err != nil {
		if errors.Is(err, logic.ErrApoioNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Apoio encontrado", GetApoioResponse{
		Apoio: ToApoioResponse(apoio),
	})
}

// UpdateApoio applies a partial update to a campaign.
func (h *ApoioHandler) UpdateApoio(c *gin.Context) {
	var req UpdateApoioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Titulo != nil {
		updates["titulo"] = *req.Titulo
	}
	if req.Descricao != nil {
		updates["descricao"] = *req.Descricao
	}
	if req.Beneficios != nil {
		updates["beneficios"] = *req.Beneficios
	}
	if req.ImagemURL != nil {
		updates["imagem_url"] = *req.ImagemURL
	}
	if req.MetaValor != nil {
		updates["meta_valor"] = *req.MetaValor
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Nenhum campo para atualizar")
		return
	}

	if err := h.apoioLogic.UpdateApoio(c.Param("id"), updates); err != nil {
		if errors.Is(err, logic.ErrApoioNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Apoio atualizado com sucesso", nil)
}

// FinishApoio closes a campaign. The transition is one-way.
func (h *ApoioHandler) FinishApoio(c *gin.Context) {
	if err := h.apoioLogic.FinishApoio(c.Param("id")); err != nil {
		if errors.Is(err, logic.ErrApoioNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Apoio finalizado", nil)
}
