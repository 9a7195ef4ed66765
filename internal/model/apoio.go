package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApoioModel is a fundraising campaign. Amounts are in centavos.
type ApoioModel struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Presentation
	Titulo     string `json:"titulo" gorm:"not null" binding:"required"`
	Descricao  string `json:"descricao" gorm:"type:text;not null" binding:"required"`
	Beneficios string `json:"beneficios" gorm:"type:text"`
	ImagemURL  string `json:"imagem_url"`

	// Funding. ValorAtual only moves through verified contribution inserts.
	MetaValor  int64 `json:"meta_valor" gorm:"not null" binding:"required,min=1"`
	ValorAtual int64 `json:"valor_atual" gorm:"default:0"`

	// Payee handle in the payment provider's namespace, stored without "@".
	HandleInfinitepay string `json:"handle_infinitepay" gorm:"not null"`

	// Owner
	UserId string `json:"user_id" gorm:"index"`

	Status ApoioStatus `json:"status" gorm:"default:'ativo'"`
}

// ApoioStatus is the campaign lifecycle status.
type ApoioStatus string

const (
	ApoioStatusAtivo     ApoioStatus = "ativo"     // accepting contributions
	ApoioStatusConcluido ApoioStatus = "concluido" // goal reached or closed by creator, one-way
	ApoioStatusCancelado ApoioStatus = "cancelado" // cancelled by creator
)

// TableName overrides the table name.
func (ApoioModel) TableName() string {
	return "apoios"
}

// BeforeCreate assigns the uuid primary key.
func (a *ApoioModel) BeforeCreate(tx *gorm.DB) error {
	if a.Id == "" {
		a.Id = uuid.NewString()
	}
	return nil
}
