package logic

import (
	"testing"

	"github.com/apoiacoletivo/acs/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateApoio(t *testing.T) {
	valid := model.ApoioModel{
		Titulo:            "Reforma da quadra",
		Descricao:         "Reforma completa da quadra do bairro",
		MetaValor:         10000,
		HandleInfinitepay: "quadra",
	}

	tests := []struct {
		name    string
		mutate  func(*model.ApoioModel)
		wantErr string
	}{
		{"valid", func(a *model.ApoioModel) {}, ""},
		{"missing title", func(a *model.ApoioModel) { a.Titulo = "" }, "o título é obrigatório"},
		{"missing description", func(a *model.ApoioModel) { a.Descricao = "" }, "a descrição é obrigatória"},
		{"zero goal", func(a *model.ApoioModel) { a.MetaValor = 0 }, "a meta deve ser maior que zero"},
		{"negative goal", func(a *model.ApoioModel) { a.MetaValor = -100 }, "a meta deve ser maior que zero"},
		{"missing handle", func(a *model.ApoioModel) { a.HandleInfinitepay = "" }, "o handle InfinitePay é obrigatório"},
	}

	l := NewApoioLogic(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apoio := valid
			tt.mutate(&apoio)

			err := l.validateApoio(&apoio)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
