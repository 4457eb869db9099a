package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fluxoapp/fluxo-api/internal/httperr"
)

// mensagens por motivo de indisponibilidade, com o limite resolvido
var hoursMessages = map[string]string{
	"hours_not_configured": "Horário de funcionamento não configurado para este dia.",
	"closed_day":           "O estabelecimento não abre neste dia.",
	"too_early":            "Horário antes da abertura.",
	"too_late":             "O serviço terminaria depois do fechamento.",
	"lunch_break":          "Horário em cima da pausa de almoço.",
}

// writeDomainError traduz a taxonomia de erros do domínio para HTTP.
// Nenhum erro é engolido ou rebaixado.
func writeDomainError(c *gin.Context, err error) {
	var ve httperr.ValidationError
	if errors.As(err, &ve) {
		httperr.BadRequest(c, "validation_error", "Campo "+ve.Field+": "+ve.Reason+".")
		return
	}

	var nfe httperr.NotFoundError
	if errors.As(err, &nfe) {
		httperr.NotFound(c, nfe.Entity+"_not_found", "Registro não encontrado: "+nfe.Entity+".")
		return
	}

	var he httperr.HoursError
	if errors.As(err, &he) {
		msg := hoursMessages[he.Reason]
		if msg == "" {
			msg = "Fora do horário de funcionamento."
		}
		if he.Boundary != "" {
			msg += " (" + he.Boundary + ")"
		}
		httperr.Unprocessable(c, he.Reason, msg)
		return
	}

	var ce httperr.ConflictError
	if errors.As(err, &ce) {
		httperr.Conflict(c, "time_conflict", "O profissional já tem agendamento neste horário.")
		return
	}

	var se httperr.StorageError
	if errors.As(err, &se) {
		httperr.Unavailable(c, "storage_error", "Banco de dados indisponível, tente novamente.")
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		httperr.BadRequest(c, be.Code, "Operação inválida: "+be.Code+".")
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}
