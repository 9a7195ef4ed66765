package payment

import (
	"github.com/apoiacoletivo/acs/internal/logic"
	"github.com/apoiacoletivo/acs/internal/model"
	"gorm.io/gorm"
)

// GormStore backs the flow with the campaign and contribution logic.
type GormStore struct {
	apoios     *logic.ApoioLogic
	apoiadores *logic.ApoiadorLogic
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		apoios:     logic.NewApoioLogic(db),
		apoiadores: logic.NewApoiadorLogic(db),
	}
}

func (s *GormStore) GetApoio(id string) (*model.ApoioModel, error) {
	return s.apoios.GetApoio(id)
}

func (s *GormStore) RegisterApoiador(apoiador *model.ApoiadorModel) (bool, error) {
	return s.apoiadores.RegisterApoiador(apoiador)
}
