package logic

import (
	"errors"
	"fmt"

	"github.com/apoiacoletivo/acs/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApoiadorLogic holds the contribution business logic.
type ApoiadorLogic struct {
	db *gorm.DB
}

// NewApoiadorLogic creates the contribution business logic.
func NewApoiadorLogic(db *gorm.DB) *ApoiadorLogic {
	return &ApoiadorLogic{db: db}
}

// RegisterApoiador records a verified contribution. The insert is guarded by
// the unique index on transaction_nsu: a conflicting insert affects zero
// rows, which is the "already reconciled" signal and returns inserted=false
// with no error. Only a fresh row moves the campaign's raised amount, and
// the campaign flips to concluído when the goal is reached.
func (l *ApoiadorLogic) RegisterApoiador(apoiador *model.ApoiadorModel) (bool, error) {
	if err := l.validateApoiador(apoiador); err != nil {
		return false, err
	}

	inserted := false
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var apoio model.ApoioModel
		if err := tx.First(&apoio, "id = ?", apoiador.ApoioId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApoioNotFound
			}
			return err
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_nsu"}},
			DoNothing: true,
		}).Create(apoiador)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Duplicate transaction reference, already recorded.
			return nil
		}
		inserted = true

		if err := tx.Model(&apoio).
			Update("valor_atual", gorm.Expr("valor_atual + ?", apoiador.Valor)).Error; err != nil {
			return err
		}

		if apoio.Status == model.ApoioStatusAtivo && apoio.ValorAtual+apoiador.Valor >= apoio.MetaValor {
			if err := tx.Model(&apoio).Update("status", model.ApoioStatusConcluido).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return inserted, nil
}

// ListApoiadores lists the contributions of one campaign, newest first.
func (l *ApoiadorLogic) ListApoiadores(apoioId string) ([]model.ApoiadorModel, error) {
	var apoiadores []model.ApoiadorModel
	if err := l.db.Where("apoio_id = ?", apoioId).
		Order("created_at DESC").
		Find(&apoiadores).Error; err != nil {
		return nil, fmt.Errorf("falha ao listar apoiadores: %w", err)
	}

	return apoiadores, nil
}

// CountApoiadoresByApoios counts contributions per campaign. Campaigns
// without contributions are absent from the map.
func (l *ApoiadorLogic) CountApoiadoresByApoios(apoioIds []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(apoioIds))
	if len(apoioIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		ApoioId string
		Total   int64
	}
	if err := l.db.Model(&model.ApoiadorModel{}).
		Select("apoio_id, COUNT(*) as total").
		Where("apoio_id IN ?", apoioIds).
		Group("apoio_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("falha ao contar apoiadores: %w", err)
	}

	for _, row := range rows {
		counts[row.ApoioId] = row.Total
	}

	return counts, nil
}

// validateApoiador checks the required contribution fields.
func (l *ApoiadorLogic) validateApoiador(apoiador *model.ApoiadorModel) error {
	if apoiador.ApoioId == "" {
		return errors.New("o apoio é obrigatório")
	}
	if apoiador.Nome == "" {
		return errors.New("o nome é obrigatório")
	}
	if apoiador.Email == "" {
		return errors.New("o email é obrigatório")
	}
	if apoiador.Valor <= 0 {
		return errors.New("o valor deve ser maior que zero")
	}
	if apoiador.TransactionNsu == "" {
		return errors.New("a referência da transação é obrigatória")
	}
	return nil
}
