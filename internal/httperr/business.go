package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ===============================
// Erros de negócio tipados
// ===============================

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError: campo ausente ou malformado, sempre corrigível pelo cliente.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return "validation: " + e.Field + " " + e.Reason
}

func ErrValidation(field, reason string) error {
	return ValidationError{Field: field, Reason: reason}
}

// NotFoundError: entidade inexistente no escopo do tenant.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return e.Entity + " not found"
}

func ErrNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

// HoursError: fora do horário de funcionamento, com o motivo e o limite
// resolvido para exibição (hora de abertura ou fechamento, quando houver).
type HoursError struct {
	Reason   string // hours_not_configured | closed_day | too_early | too_late | lunch_break
	Boundary string // "15:04" local, vazio quando não se aplica
}

func (e HoursError) Error() string {
	if e.Boundary == "" {
		return e.Reason
	}
	return e.Reason + " (" + e.Boundary + ")"
}

func ErrHours(reason, boundary string) error {
	return HoursError{Reason: reason, Boundary: boundary}
}

// ConflictError: o profissional já tem agendamento no intervalo.
type ConflictError struct{}

func (ConflictError) Error() string {
	return "time_conflict"
}

func ErrConflict() error {
	return ConflictError{}
}

// StorageError: banco indisponível ou timeout; transiente, nada foi gravado.
type StorageError struct {
	Err error
}

func (e StorageError) Error() string {
	return "storage: " + e.Err.Error()
}

func (e StorageError) Unwrap() error {
	return e.Err
}

func ErrStorage(err error) error {
	return StorageError{Err: err}
}

// ===============================
// Detecção de erros do Postgres
// ===============================

// IsExclusionConflict reconhece a violação da constraint de exclusão
// de intervalos (23P01) e de chave única (23505): outra requisição
// gravou o mesmo horário primeiro.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
