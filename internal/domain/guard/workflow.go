// Package guard implementa el flujo de confirmación en dos pasos para operaciones
// destructivas (borrar un usuario, reiniciar las propinas de una semana):
//
//	Idle -> PendingConfirm(target) -> PendingPhraseMatch(target) -> Idle
//
// más un cerrojo Busy, ortogonal al estado, mientras la operación está en curso.
package guard

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/puantaj-api/internal/domain"
)

var (
	ErrBusy              = errors.New("hay una operación en curso")
	ErrInvalidTransition = errors.New("transición no permitida en el estado actual")
)

// State estado del flujo.
type State int

const (
	Idle State = iota
	PendingConfirm
	PendingPhraseMatch
)

func (s State) String() string {
	switch s {
	case PendingConfirm:
		return "PENDING_CONFIRM"
	case PendingPhraseMatch:
		return "PENDING_PHRASE_MATCH"
	default:
		return "IDLE"
	}
}

// ProtectFunc indica si un objetivo no puede ser destruido nunca (p.ej. el admin).
type ProtectFunc func(target string) bool

// Snapshot vista de solo lectura del flujo.
type Snapshot struct {
	State  State
	Target string
	Busy   bool
}

// Workflow una instancia del flujo. Segura para uso concurrente.
type Workflow struct {
	mu        sync.Mutex
	state     State
	target    string
	busy      bool
	protected ProtectFunc
}

// New crea un flujo en Idle. protected puede ser nil.
func New(protected ProtectFunc) *Workflow {
	return &Workflow{protected: protected}
}

// Snapshot devuelve el estado actual.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{State: w.state, Target: w.target, Busy: w.busy}
}

// Request abre (o redirige) una confirmación pendiente para target.
func (w *Workflow) Request(target string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrBusy
	}
	if target == "" {
		return domain.Validation("EMPTY_TARGET", "objetivo vacío")
	}
	w.state, w.target = PendingConfirm, target
	return nil
}

// Accept pasa de PendingConfirm(target) a PendingPhraseMatch(target).
func (w *Workflow) Accept(target string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrBusy
	}
	if w.state != PendingConfirm || w.target != target {
		return ErrInvalidTransition
	}
	w.state = PendingPhraseMatch
	return nil
}

// Cancel vuelve a Idle desde cualquier estado pendiente. En Idle no hace nada.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrBusy
	}
	w.reset()
	return nil
}

// Execute ejecuta op si el flujo está en PendingPhraseMatch(target) y typed coincide
// exactamente con required (distingue mayúsculas y espacios).
//
// Un objetivo protegido devuelve el flujo a Idle. Si la frase no coincide o op falla,
// el flujo sigue en PendingPhraseMatch para reintentar o cancelar.
func (w *Workflow) Execute(ctx context.Context, target, typed, required string, op func(context.Context) error) error {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return ErrBusy
	}
	if w.state != PendingPhraseMatch || w.target != target {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	if w.protected != nil && w.protected(target) {
		w.reset()
		w.mu.Unlock()
		return domain.Validation(domain.CodeProtectedUser, "el objetivo %q está protegido", target)
	}
	if typed != required {
		w.mu.Unlock()
		return domain.Validation(domain.CodePhraseMismatch, "la frase no coincide")
	}
	w.busy = true
	w.mu.Unlock()

	err := op(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
	if err != nil {
		return err
	}
	w.reset()
	return nil
}

func (w *Workflow) reset() {
	w.state, w.target = Idle, ""
}

// Operation nombre de una operación protegida.
type Operation string

const (
	OpDeleteUser Operation = "delete_user"
	OpTipReset   Operation = "tip_reset"
)

type key struct {
	op    Operation
	actor string
}

// Registry mantiene un flujo por (operación, actor) para que dos administradores no
// compartan la misma confirmación pendiente.
type Registry struct {
	mu        sync.Mutex
	protected map[Operation]ProtectFunc
	flows     map[key]*Workflow
}

func NewRegistry() *Registry {
	return &Registry{
		protected: make(map[Operation]ProtectFunc),
		flows:     make(map[key]*Workflow),
	}
}

// Protect registra la regla de protección de op. Aplica a los flujos creados después.
func (r *Registry) Protect(op Operation, fn ProtectFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.protected[op] = fn
}

// For devuelve (creándolo si hace falta) el flujo de op para actor.
func (r *Registry) For(op Operation, actor string) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{op: op, actor: actor}
	w, ok := r.flows[k]
	if !ok {
		w = New(r.protected[op])
		r.flows[k] = w
	}
	return w
}
