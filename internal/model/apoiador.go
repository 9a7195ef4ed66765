package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApoiadorModel is a recorded contribution. The provider transaction
// reference carries a unique index so a payment can only be recorded once,
// no matter how many reconciliation passes see it.
type ApoiadorModel struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ApoioId string `json:"apoio_id" gorm:"type:uuid;not null;index"`
	Nome    string `json:"nome" gorm:"not null"`
	Email   string `json:"email" gorm:"not null"`
	Valor   int64  `json:"valor" gorm:"not null"` // centavos

	TransactionNsu string `json:"transaction_nsu" gorm:"not null;uniqueIndex"`
}

// TableName overrides the table name.
func (ApoiadorModel) TableName() string {
	return "apoiadores"
}

// BeforeCreate assigns the uuid primary key.
func (a *ApoiadorModel) BeforeCreate(tx *gorm.DB) error {
	if a.Id == "" {
		a.Id = uuid.NewString()
	}
	return nil
}
