package draft

import "github.com/jhoicas/invoice-draft/internal/domain/entity"

// EventKind tipo de cambio notificado a los suscriptores.
type EventKind string

const (
	EventLoaded       EventKind = "loaded"
	EventFieldUpdated EventKind = "field_updated"
	EventItemAdded    EventKind = "item_added"
	EventItemRemoved  EventKind = "item_removed"
	EventItemUpdated  EventKind = "item_updated"
	EventCleared      EventKind = "cleared"
)

// Event describe un cambio del borrador. Draft es una copia; el suscriptor puede retenerla.
// Warning no es nil cuando la operación degradó (snapshot malformado, fallo de escritura),
// pero el borrador en memoria sigue siendo válido.
type Event struct {
	Kind    EventKind
	Draft   entity.InvoiceDraft
	Warning error
}

// Listener recibe eventos de forma síncrona, en el orden de suscripción.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}
