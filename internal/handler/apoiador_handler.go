package handler

import (
	"net/http"
	"strings"

	"github.com/apoiacoletivo/acs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApoiadorHandler serves the contribution read endpoints.
type ApoiadorHandler struct {
	apoiadorLogic *logic.ApoiadorLogic
}

// NewApoiadorHandler creates the contribution handler.
func NewApoiadorHandler(db *gorm.DB) *ApoiadorHandler {
	return &ApoiadorHandler{
		apoiadorLogic: logic.NewApoiadorLogic(db),
	}
}

// GetApoiadores lists the contributions of one campaign.
func (h *ApoiadorHandler) GetApoiadores(c *gin.Context) {
	apoiadores, err := h.apoiadorLogic.ListApoiadores(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Apoiadores listados com sucesso", GetApoiadoresResponse{
		Apoiadores: ToApoiadorResponseList(apoiadores),
	})
}

// GetApoiadorCounts counts contributions per campaign for a comma-separated
// ids query parameter.
func (h *ApoiadorHandler) GetApoiadorCounts(c *gin.Context) {
	idsParam := c.Query("ids")
	if idsParam == "" {
		ErrorResponse(c, http.StatusBadRequest, "O parâmetro ids é obrigatório")
		return
	}

	var ids []string
	for _, id := range strings.Split(idsParam, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	counts, err := h.apoiadorLogic.CountApoiadoresByApoios(ids)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Contagem de apoiadores", GetApoiadorCountsResponse{
		Counts: counts,
	})
}
