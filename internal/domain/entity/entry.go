package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato ISO de fecha de calendario (sin hora).
const DateLayout = "2006-01-02"

// EntryType tipo de línea del libro. Conjunto cerrado.
type EntryType string

const (
	EntryType5H      EntryType = "5H"
	EntryType8H      EntryType = "8H"
	EntryTypeCustom  EntryType = "CUSTOM"
	EntryTypeExpense EntryType = "EXPENSE"
	EntryTypePayment EntryType = "PAYMENT"
	EntryTypeTip     EntryType = "TIP"
)

// EntryTypes todos los tipos, en orden de presentación.
var EntryTypes = []EntryType{
	EntryType5H, EntryType8H, EntryTypeCustom, EntryTypeExpense, EntryTypePayment, EntryTypeTip,
}

// ParseEntryType valida s contra el conjunto cerrado.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(s)
	switch t {
	case EntryType5H, EntryType8H, EntryTypeCustom, EntryTypeExpense, EntryTypePayment, EntryTypeTip:
		return t, nil
	default:
		return "", fmt.Errorf("tipo de registro desconocido %q", s)
	}
}

// CountsTowardBalance indica si el importe entra en el saldo/ganancias de los reportes.
// Las propinas son informativas y se muestran aparte.
func (t EntryType) CountsTowardBalance() bool {
	switch t {
	case EntryType5H, EntryType8H, EntryTypeCustom, EntryTypeExpense, EntryTypePayment:
		return true
	case EntryTypeTip:
		return false
	default:
		panic(fmt.Sprintf("entity: tipo de registro sin clasificar %q", string(t)))
	}
}

// Entry línea del libro de un usuario. Amount > 0 abona, < 0 descuenta.
type Entry struct {
	ID     string
	UserID string
	Type   EntryType
	Amount decimal.Decimal
	Date   string           // YYYY-MM-DD
	Hours  *decimal.Decimal // opcional, solo para ponderar propinas
	Note   string           // opcional
}

// HasHours indica si el registro informa horas trabajadas.
func (e Entry) HasHours() bool {
	return e.Hours != nil
}

// ParseDate valida una fecha ISO YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q (formato YYYY-MM-DD)", s)
	}
	return d, nil
}
