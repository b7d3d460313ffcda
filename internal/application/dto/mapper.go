package dto

import (
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/guard"
)

// NewUserResponse convierte la entidad en su salida.
func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Role:       string(u.Role),
		HourlyRate: u.HourlyRate,
		Avatar:     u.Avatar,
	}
}

// NewEntryResponse convierte la entidad en su salida.
func NewEntryResponse(e entity.Entry) EntryResponse {
	return EntryResponse{
		ID:     e.ID,
		UserID: e.UserID,
		Type:   string(e.Type),
		Amount: e.Amount,
		Date:   e.Date,
		Hours:  e.Hours,
		Note:   e.Note,
	}
}

// NewEntryResponses convierte una lista; nunca devuelve nil.
func NewEntryResponses(entries []entity.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryResponse(e))
	}
	return out
}

// NewGuardStateResponse convierte el estado del flujo; phrase solo se expone al pedir la frase.
func NewGuardStateResponse(s guard.Snapshot, phrase string) GuardStateResponse {
	out := GuardStateResponse{State: s.State.String(), Target: s.Target, Busy: s.Busy}
	if s.State == guard.PendingPhraseMatch {
		out.Phrase = phrase
	}
	return out
}
