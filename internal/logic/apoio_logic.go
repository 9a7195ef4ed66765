package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apoiacoletivo/acs/internal/model"
	"gorm.io/gorm"
)

// ErrApoioNotFound reports a lookup for a campaign that does not exist.
var ErrApoioNotFound = errors.New("apoio não encontrado")

// ApoioLogic holds the campaign business logic.
type ApoioLogic struct {
	db *gorm.DB
}

// NewApoioLogic creates the campaign business logic.
func NewApoioLogic(db *gorm.DB) *ApoioLogic {
	return &ApoioLogic{db: db}
}

// CreateApoio validates and persists a new campaign.
func (l *ApoioLogic) CreateApoio(apoio *model.ApoioModel) error {
	if err := l.validateApoio(apoio); err != nil {
		return err
	}

	// The handle may be pasted with the provider's "@" prefix.
	apoio.HandleInfinitepay = strings.TrimPrefix(apoio.HandleInfinitepay, "@")
	apoio.Status = model.ApoioStatusAtivo
	apoio.ValorAtual = 0

	if err := l.db.Create(apoio).Error; err != nil {
		return fmt.Errorf("falha ao criar apoio: %w", err)
	}

	return nil
}

// GetApoio fetches one campaign by id.
func (l *ApoioLogic) GetApoio(id string) (*model.ApoioModel, error) {
	var apoio model.ApoioModel
	if err := l.db.First(&apoio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApoioNotFound
		}
		return nil, fmt.Errorf("falha ao buscar apoio: %w", err)
	}

	return &apoio, nil
}

// GetApoios lists all campaigns, newest first.
func (l *ApoioLogic) GetApoios() ([]model.ApoioModel, error) {
	var apoios []model.ApoioModel
	if err := l.db.Order("created_at DESC").Find(&apoios).Error; err != nil {
		return nil, fmt.Errorf("falha ao listar apoios: %w", err)
	}

	return apoios, nil
}

// ListApoiosByUser lists the campaigns owned by a user, newest first. An
// owner without campaigns gets an empty slice, not an error.
func (l *ApoioLogic) ListApoiosByUser(userId string) ([]model.ApoioModel, error) {
	var apoios []model.ApoioModel
	if err := l.db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&apoios).Error; err != nil {
		return nil, fmt.Errorf("falha ao listar apoios do usuário: %w", err)
	}

	return apoios, nil
}

// UpdateApoio applies a partial update. Finished campaigns are immutable,
// and the goal can never drop below what was already raised.
func (l *ApoioLogic) UpdateApoio(id string, updates map[string]interface{}) error {
	apoio, err := l.GetApoio(id)
	if err != nil {
		return err
	}

	if apoio.Status == model.ApoioStatusConcluido {
		return errors.New("apoio concluído não pode ser editado")
	}

	if meta, ok := updates["meta_valor"]; ok {
		metaValor, ok := meta.(int64)
		if !ok || metaValor <= 0 {
			return errors.New("meta inválida")
		}
		if metaValor < apoio.ValorAtual {
			return errors.New("a meta não pode ser menor que o valor já arrecadado")
		}
	}

	if handle, ok := updates["handle_infinitepay"]; ok {
		if h, ok := handle.(string); ok {
			updates["handle_infinitepay"] = strings.TrimPrefix(h, "@")
		}
	}

	if err := l.db.Model(&model.ApoioModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("falha ao atualizar apoio: %w", err)
	}

	return nil
}

// FinishApoio moves a campaign to concluído. The transition is one-way and
// only valid from ativo.
func (l *ApoioLogic) FinishApoio(id string) error {
	apoio, err := l.GetApoio(id)
	if err != nil {
		return err
	}

	if apoio.Status != model.ApoioStatusAtivo {
		return errors.New("apenas apoios ativos podem ser finalizados")
	}

	if err := l.db.Model(apoio).Update("status", model.ApoioStatusConcluido).Error; err != nil {
		return fmt.Errorf("falha ao finalizar apoio: %w", err)
	}

	return nil
}

// validateApoio checks the required campaign fields.
func (l *ApoioLogic) validateApoio(apoio *model.ApoioModel) error {
	if apoio.Titulo == "" {
		return errors.New("o título é obrigatório")
	}
	if apoio.Descricao == "" {
		return errors.New("a descrição é obrigatória")
	}
	if apoio.MetaValor <= 0 {
		return errors.New("a meta deve ser maior que zero")
	}
	if apoio.HandleInfinitepay == "" {
		return errors.New("o handle InfinitePay é obrigatório")
	}
	return nil
}
