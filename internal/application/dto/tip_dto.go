package dto

import "github.com/shopspring/decimal"

// StaffHoursResponse horas de un usuario en la semana y su parte prevista.
type StaffHoursResponse struct {
	UserID string           `json:"user_id"`
	Name   string           `json:"name"`
	Hours  decimal.Decimal  `json:"hours"`
	Share  *decimal.Decimal `json:"share,omitempty"`
}

// TipPreviewResponse vista previa del reparto de una semana.
type TipPreviewResponse struct {
	Anchor      string               `json:"anchor"`
	WeekStart   string               `json:"week_start"`
	WeekEnd     string               `json:"week_end"`
	TotalHours  decimal.Decimal      `json:"total_hours"`
	Rate        decimal.Decimal      `json:"rate"`
	Pool        *decimal.Decimal     `json:"pool,omitempty"`
	Staff       []StaffHoursResponse `json:"staff"`
	Existing    []EntryResponse      `json:"existing"`
	Distributed *decimal.Decimal     `json:"distributed,omitempty"`
	Unallocated *decimal.Decimal     `json:"unallocated,omitempty"`
	// CanDistribute es false si no hay horas en la semana o el bote no es positivo.
	CanDistribute bool `json:"can_distribute"`
}

// DistributeTipsRequest reparto de un bote. ConfirmAppend es obligatorio si ya hay propinas para el ancla.
type DistributeTipsRequest struct {
	Pool          decimal.Decimal `json:"pool" validate:"required,gt=0"`
	ConfirmAppend bool            `json:"confirm_append"`
}

// DistributeTipsResponse registros escritos.
type DistributeTipsResponse struct {
	Anchor      string          `json:"anchor"`
	Written     int             `json:"written"`
	Entries     []EntryResponse `json:"entries"`
	Distributed decimal.Decimal `json:"distributed"`
	Unallocated decimal.Decimal `json:"unallocated"`
	// Error presente solo si el reparto quedó incompleto.
	Error *ErrorResponse `json:"error,omitempty"`
}
