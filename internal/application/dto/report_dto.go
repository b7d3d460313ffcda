package dto

import "github.com/shopspring/decimal"

// MonthQuery año y mes de un reporte; cero = mes actual.
type MonthQuery struct {
	Year  int `query:"year"`
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
}

// SummaryResponse resumen del usuario: saldo (sin propinas) y totales del mes.
type SummaryResponse struct {
	User        UserResponse    `json:"user"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Balance     decimal.Decimal `json:"balance"`
	TipsTotal   decimal.Decimal `json:"tips_total"`
	MonthCredit decimal.Decimal `json:"month_credit"`
	MonthDebit  decimal.Decimal `json:"month_debit"`
	MonthTips   decimal.Decimal `json:"month_tips"`
}

// CalendarDay registros de un día.
type CalendarDay struct {
	Date    string          `json:"date"`
	Total   decimal.Decimal `json:"total"`
	Entries []EntryResponse `json:"entries"`
}

// CalendarResponse calendario mensual del usuario, un elemento por día del mes.
type CalendarResponse struct {
	UserID string        `json:"user_id"`
	Year   int           `json:"year"`
	Month  int           `json:"month"`
	Days   []CalendarDay `json:"days"`
}

// RankingItem posición en el ranking.
type RankingItem struct {
	Position int             `json:"position"`
	User     UserResponse    `json:"user"`
	Balance  decimal.Decimal `json:"balance"`
	Tips     decimal.Decimal `json:"tips"`
}

// RankingResponse ranking de saldos.
type RankingResponse struct {
	Items []RankingItem `json:"items"`
}

// SyncResponse resultado de una recarga desde el gateway.
type SyncResponse struct {
	Users   int `json:"users"`
	Entries int `json:"entries"`
}
