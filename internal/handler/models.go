package handler

import (
	"time"

	"github.com/apoiacoletivo/acs/internal/model"
)

// Response is the common response envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Campaign requests

// CreateApoioRequest creates a campaign. Amounts are centavos.
type CreateApoioRequest struct {
	Titulo            string `json:"titulo" binding:"required"`
	Descricao         string `json:"descricao" binding:"required"`
	Beneficios        string `json:"beneficios"`
	ImagemURL         string `json:"imagem_url"`
	MetaValor         int64  `json:"meta_valor" binding:"required,min=1"`
	HandleInfinitepay string `json:"handle_infinitepay" binding:"required"`
	UserId            string `json:"user_id"`
}

// UpdateApoioRequest is a partial campaign update.
type UpdateApoioRequest struct {
	Titulo     *string `json:"titulo"`
	Descricao  *string `json:"descricao"`
	Beneficios *string `json:"beneficios"`
	ImagemURL  *string `json:"imagem_url"`
	MetaValor  *int64  `json:"meta_valor"`
}

// ContributeRequest is one supporter's contribution attempt.
type ContributeRequest struct {
	Nome  string `json:"nome" binding:"required,min=3"`
	Email string `json:"email" binding:"required,email"`
	Valor int64  `json:"valor" binding:"required,min=1"` // centavos
}

// Campaign responses

// ApoioResponse is the campaign response model.
type ApoioResponse struct {
	Id                string    `json:"id"`
	Titulo            string    `json:"titulo"`
	Descricao         string    `json:"descricao"`
	Beneficios        string    `json:"beneficios,omitempty"`
	ImagemURL         string    `json:"imagemUrl,omitempty"`
	MetaValor         int64     `json:"metaValor"`
	ValorAtual        int64     `json:"valorAtual"`
	HandleInfinitepay string    `json:"handleInfinitepay"`
	UserId            string    `json:"userId,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// GetApoiosResponse lists campaigns.
type GetApoiosResponse struct {
	Apoios []ApoioResponse `json:"apoios"`
}

// GetApoioResponse wraps one campaign.
type GetApoioResponse struct {
	Apoio ApoioResponse `json:"apoio"`
}

// ApoiadorResponse is the contribution response model. The supporter email
// is not exposed on the public listing.
type ApoiadorResponse struct {
	Id        string    `json:"id"`
	ApoioId   string    `json:"apoioId"`
	Nome      string    `json:"nome"`
	Valor     int64     `json:"valor"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetApoiadoresResponse lists the contributions of one campaign.
type GetApoiadoresResponse struct {
	Apoiadores []ApoiadorResponse `json:"apoiadores"`
}

// GetApoiadorCountsResponse maps campaign id to contribution count.
type GetApoiadorCountsResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// Converters

// ToApoioResponse converts a database model into the response model.
func ToApoioResponse(apoio *model.ApoioModel) ApoioResponse {
	return ApoioResponse{
		Id:                apoio.Id,
		Titulo:            apoio.Titulo,
		Descricao:         apoio.Descricao,
		Beneficios:        apoio.Beneficios,
		ImagemURL:         apoio.ImagemURL,
		MetaValor:         apoio.MetaValor,
		ValorAtual:        apoio.ValorAtual,
		HandleInfinitepay: apoio.HandleInfinitepay,
		UserId:            apoio.UserId,
		Status:            string(apoio.Status),
		CreatedAt:         apoio.CreatedAt,
		UpdatedAt:         apoio.UpdatedAt,
	}
}

// ToApoioResponseList converts a list of database models.
func ToApoioResponseList(apoios []model.ApoioModel) []ApoioResponse {
	result := make([]ApoioResponse, len(apoios))
	for i, apoio := range apoios {
		result[i] = ToApoioResponse(&apoio)
	}
	return result
}

// ToApoiadorResponse converts a database model into the response model.
func ToApoiadorResponse(apoiador *model.ApoiadorModel) ApoiadorResponse {
	return ApoiadorResponse{
		Id:        apoiador.Id,
		ApoioId:   apoiador.ApoioId,
		Nome:      apoiador.Nome,
		Valor:     apoiador.Valor,
		CreatedAt: apoiador.CreatedAt,
	}
}

// ToApoiadorResponseList converts a list of database models.
func ToApoiadorResponseList(apoiadores []model.ApoiadorModel) []ApoiadorResponse {
	result := make([]ApoiadorResponse, len(apoiadores))
	for i, apoiador := range apoiadores {
		result[i] = ToApoiadorResponse(&apoiador)
	}
	return result
}
