package dto

import "github.com/shopspring/decimal"

// CreateEntryRequest alta manual de un registro. TIP no se admite (solo lo genera el reparto).
type CreateEntryRequest struct {
	UserID string           `json:"user_id" validate:"required"`
	Type   string           `json:"type" validate:"required,oneof=5H 8H CUSTOM EXPENSE PAYMENT"`
	Amount *decimal.Decimal `json:"amount" validate:"required"`
	Date   string           `json:"date" validate:"required,datetime=2006-01-02"`
	Hours  *decimal.Decimal `json:"hours" validate:"omitempty,gte=0"`
	Note   string           `json:"note"`
}

// EntryFilter filtros de listado: date exacta o rango from..to (inclusive).
type EntryFilter struct {
	UserID string `query:"user_id"`
	Date   string `query:"date"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// EntryResponse salida de un registro.
type EntryResponse struct {
	ID     string           `json:"id"`
	UserID string           `json:"user_id"`
	Type   string           `json:"type"`
	Amount decimal.Decimal  `json:"amount"`
	Date   string           `json:"date"`
	Hours  *decimal.Decimal `json:"hours,omitempty"`
	Note   string           `json:"note,omitempty"`
}

// EntryListResponse lista de registros.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
}
