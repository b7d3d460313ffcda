package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puantaj-api/internal/domain/entity"
)

// Statement datos de un extracto mensual listo para renderizar.
type Statement struct {
	User        entity.User
	Year        int
	Month       int
	Currency    string
	Balance     decimal.Decimal // sin propinas
	TipsTotal   decimal.Decimal
	MonthCredit decimal.Decimal
	MonthDebit  decimal.Decimal
	MonthTips   decimal.Decimal
	Entries     []entity.Entry // registros del mes, por fecha
	GeneratedAt time.Time
}

// StatementPDFGenerator puerto para generar el PDF del extracto.
type StatementPDFGenerator interface {
	Generate(st Statement) ([]byte, error)
}
