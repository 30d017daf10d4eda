package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Any state is
// reachable from any other by direct selection; there is no transition table.
type TicketStatus string

const (
	StatusNuevo                TicketStatus = "Nuevo"
	StatusAbierto              TicketStatus = "Abierto"
	StatusEnProceso            TicketStatus = "En proceso"
	StatusVisita               TicketStatus = "Visita"
	StatusVisitaCoordinar      TicketStatus = "Visita - Coordinar"
	StatusVisitaProgramada     TicketStatus = "Visita Programada"
	StatusVisitaRealizada      TicketStatus = "Visita Realizada"
	StatusRevisionCerrarVisita TicketStatus = "Revision Cerrar Visita"
	StatusResuelto             TicketStatus = "Resuelto"
	StatusFacturar             TicketStatus = "Facturar"
	StatusPagado               TicketStatus = "Pagado"
	StatusPendienteCliente     TicketStatus = "Pendiente de Cliente"
	StatusPendienteTercero     TicketStatus = "Pendiente de Tercero"
	StatusPendienteFacturacion TicketStatus = "Pendiente de Facturación"
	StatusPendientePago        TicketStatus = "Pendiente de Pago"
)

var knownStatuses = map[TicketStatus]struct{}{
	StatusNuevo:                {},
	StatusAbierto:              {},
	StatusEnProceso:            {},
	StatusVisita:               {},
	StatusVisitaCoordinar:      {},
	StatusVisitaProgramada:     {},
	StatusVisitaRealizada:      {},
	StatusRevisionCerrarVisita: {},
	StatusResuelto:             {},
	StatusFacturar:             {},
	StatusPagado:               {},
	StatusPendienteCliente:     {},
	StatusPendienteTercero:     {},
	StatusPendienteFacturacion: {},
	StatusPendientePago:        {},
}

// IsValid reports whether the status is a known lifecycle state.
func (s TicketStatus) IsValid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// IsVisitClass reports whether the status belongs to the visit family,
// which switches the detail view to the dedicated visit form.
func (s TicketStatus) IsVisitClass() bool {
	switch s {
	case StatusVisita, StatusVisitaCoordinar, StatusVisitaProgramada,
		StatusVisitaRealizada, StatusRevisionCerrarVisita:
		return true
	}
	return false
}

// IsTerminal reports whether the status gates the read-only row lock in
// list views. The lock is a display concern, not enforced here.
func (s TicketStatus) IsTerminal() bool {
	return s == StatusResuelto || s == StatusPagado
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	PriorityAlta  TicketPriority = "Alta"
	PriorityMedia TicketPriority = "Media"
	PriorityBaja  TicketPriority = "Baja"
)

// IsValid reports whether the priority is known.
func (p TicketPriority) IsValid() bool {
	return p == PriorityAlta || p == PriorityMedia || p == PriorityBaja
}

// Currency enumerates billing currencies.
type Currency string

const (
	CurrencyUYU Currency = "UYU"
	CurrencyUSD Currency = "USD"
)

// IsValid reports whether the currency is known.
func (c Currency) IsValid() bool {
	return c == CurrencyUYU || c == CurrencyUSD
}

// Ticket is the aggregate for a support request. The annotation log travels
// with the ticket: the whole record, log included, is replaced on save.
// Invariant: at most one of AssignedTo / AssignedGroupID is non-nil.
type Ticket struct {
	ID              string
	Title           string
	ClientID        string
	ClientName      string
	Status          TicketStatus
	Priority        TicketPriority
	Visit           bool
	Amount          *float64
	AmountCurrency  Currency
	Description     string
	AssignedTo      *string
	AssignedGroupID *string
	Annotations     []Annotation
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TicketSnapshot is an immutable value holding the mutable field state of a
// ticket at a point in time. Snapshots are compared pairwise to produce
// audit entries; they are copied by value and never mutated in place.
type TicketSnapshot struct {
	Status          TicketStatus
	Priority        TicketPriority
	Visit           bool
	Amount          *float64
	AmountCurrency  Currency
	Description     string
	AssignedTo      *string
	AssignedGroupID *string
}

// Snapshot captures the ticket's current field state.
func (t *Ticket) Snapshot() TicketSnapshot {
	return TicketSnapshot{
		Status:          t.Status,
		Priority:        t.Priority,
		Visit:           t.Visit,
		Amount:          copyFloat(t.Amount),
		AmountCurrency:  t.AmountCurrency,
		Description:     t.Description,
		AssignedTo:      copyString(t.AssignedTo),
		AssignedGroupID: copyString(t.AssignedGroupID),
	}
}

// Normalize reconciles the redundant visit flag with the status enum. The
// status is canonical: "Visita" always implies the flag, while a flag set
// independently under another status is preserved.
func (s TicketSnapshot) Normalize() TicketSnapshot {
	if s.Status == StatusVisita {
		s.Visit = true
	}
	return s
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
