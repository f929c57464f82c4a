// Package draft implementa el Draft Store: dueño del borrador de factura vigente,
// aplica las mutaciones produciendo un borrador nuevo, persiste el snapshot
// completo tras cada cambio y notifica a los suscriptores.
package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-draft/internal/domain"
	domaindraft "github.com/jhoicas/invoice-draft/internal/domain/draft"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
	"github.com/jhoicas/invoice-draft/internal/domain/repository"
)

// DefaultStorageKey clave fija de la ranura donde se guarda el borrador.
const DefaultStorageKey = "invoiceData"

// StoreConfig dependencias opcionales del Store. Los campos vacíos toman su valor por defecto.
type StoreConfig struct {
	Key    string          // clave del snapshot (default DefaultStorageKey)
	IDs    IDGenerator     // default UUIDGenerator
	Clock  Clock           // default time.Now
	Logger *zerolog.Logger // default zerolog.Nop()
}

// Store es el único dueño del borrador en memoria. Todas las operaciones son
// totales: siempre devuelven un borrador válido.
//
// El error devuelto por las mutaciones solo es distinto de nil cuando el cambio
// se aplicó en memoria pero no pudo persistirse (envuelve domain.ErrPersistFailed).
// Debe tratarse como advertencia, no como fallo de la operación.
type Store struct {
	repo  repository.SnapshotRepository
	key   string
	ids   IDGenerator
	clock Clock
	log   zerolog.Logger

	mu        sync.Mutex
	current   entity.InvoiceDraft
	listeners []subscription
	nextSubID int
}

// NewStore construye el store con un borrador nuevo en memoria (sin persistir).
// Llamar a Load para restaurar el snapshot guardado.
func NewStore(repo repository.SnapshotRepository, cfg StoreConfig) *Store {
	s := &Store{
		repo:  repo,
		key:   cfg.Key,
		ids:   cfg.IDs,
		clock: cfg.Clock,
		log:   zerolog.Nop(),
	}
	if s.key == "" {
		s.key = DefaultStorageKey
	}
	if s.ids == nil {
		s.ids = UUIDGenerator{}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if cfg.Logger != nil {
		s.log = cfg.Logger.With().Str("component", "draft_store").Str("key", s.key).Logger()
	}
	s.current = s.freshDraft()
	return s
}

// Key devuelve la clave de almacenamiento usada por el store.
func (s *Store) Key() string { return s.key }

// Subscribers cantidad de suscripciones activas (clientes del stream de eventos).
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Current devuelve una copia del borrador vigente.
func (s *Store) Current() entity.InvoiceDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Totals calcula subtotal, impuesto y total del borrador vigente.
func (s *Store) Totals() domaindraft.Totals {
	return domaindraft.Compute(s.Current())
}

// Subscribe registra un listener. La función devuelta cancela la suscripción.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Load intenta restaurar el snapshot persistido. Si no existe, no se puede leer o
// está malformado, el borrador vigente pasa a ser uno nuevo por defecto y se guarda
// de inmediato, de modo que la siguiente sesión recupere el mismo borrador. La
// degradación se registra en el log y viaja en el Warning del evento EventLoaded;
// nunca se devuelve como error.
func (s *Store) Load(ctx context.Context) entity.InvoiceDraft {
	var warning error
	next, err := s.readSnapshot(ctx)
	restored := err == nil
	switch {
	case restored:
		s.log.Debug().Int("items", len(next.Items)).Msg("borrador restaurado")
	case errors.Is(err, domain.ErrNotFound):
		next = s.freshDraft()
		s.log.Debug().Msg("sin borrador persistido, se crea uno nuevo")
	default:
		next = s.freshDraft()
		warning = err
		s.log.Warn().Err(err).Msg("borrador persistido descartado, se usan valores por defecto")
	}
	if seeder, ok := s.ids.(IDSeeder); ok {
		seeder.Seed(itemIDs(next))
	}

	s.mu.Lock()
	s.current = next
	if !restored {
		if perr := s.persist(ctx, next); perr != nil {
			warning = errors.Join(warning, perr)
		}
	}
	out := next.Clone()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.emit(listeners, Event{Kind: EventLoaded, Draft: out, Warning: warning})
	return out
}

// UpdateField reemplaza un campo escalar de nivel superior.
// Los campos de texto guardan el valor tal cual (strings) o su representación fmt.
// FieldTax espera un número ya coercionado por el llamador; un string se coerciona
// con la misma regla que las líneas. FieldItems o un campo desconocido no hacen nada.
func (s *Store) UpdateField(ctx context.Context, field entity.DraftField, value any) (entity.InvoiceDraft, error) {
	return s.apply(ctx, EventFieldUpdated, func(d entity.InvoiceDraft) (entity.InvoiceDraft, bool) {
		if field == entity.FieldTax {
			d.Tax = domaindraft.CoerceNumber(value)
			return d, true
		}
		out, ok := d.WithText(field, textValue(value))
		if !ok {
			s.log.Debug().Str("field", string(field)).Msg("campo no actualizable, se ignora")
		}
		return out, ok
	})
}

// AddItem agrega al final una línea vacía con id nuevo, cantidad 1 y precio 0.
func (s *Store) AddItem(ctx context.Context) (entity.InvoiceDraft, error) {
	return s.apply(ctx, EventItemAdded, func(d entity.InvoiceDraft) (entity.InvoiceDraft, bool) {
		d.Items = append(d.Items, entity.NewLineItem(s.newItemID(d)))
		return d, true
	})
}

// RemoveItem quita la línea con ese id salvo que sea la única; en ese caso, o si el
// id no existe, el borrador queda igual.
func (s *Store) RemoveItem(ctx context.Context, id string) (entity.InvoiceDraft, error) {
	return s.apply(ctx, EventItemRemoved, func(d entity.InvoiceDraft) (entity.InvoiceDraft, bool) {
		if len(d.Items) <= 1 {
			return d, false
		}
		idx := d.IndexOf(id)
		if idx < 0 {
			return d, false
		}
		d.Items = append(d.Items[:idx:idx], d.Items[idx+1:]...)
		return d, true
	})
}

// UpdateItem asigna un campo de la línea con ese id. La descripción guarda el texto
// crudo; cantidad y precio se interpretan como número y un valor no numérico deja 0.
func (s *Store) UpdateItem(ctx context.Context, id string, field entity.ItemField, value string) (entity.InvoiceDraft, error) {
	return s.apply(ctx, EventItemUpdated, func(d entity.InvoiceDraft) (entity.InvoiceDraft, bool) {
		idx := d.IndexOf(id)
		if idx < 0 {
			return d, false
		}
		it := &d.Items[idx]
		switch field {
		case entity.ItemDescription:
			it.Description = value
		case entity.ItemQuantity:
			it.Quantity = domaindraft.ParseNumber(value)
		case entity.ItemPrice:
			it.Price = domaindraft.ParseNumber(value)
		default:
			s.log.Debug().Str("field", string(field)).Msg("campo de línea desconocido, se ignora")
			return d, false
		}
		return d, true
	})
}

// Clear vuelve a un borrador nuevo: borra el snapshot anterior y guarda el nuevo,
// de modo que un Load posterior devuelva este mismo borrador y no los datos previos.
func (s *Store) Clear(ctx context.Context) (entity.InvoiceDraft, error) {
	s.mu.Lock()
	s.current = s.freshDraft()
	out := s.current.Clone()
	var warning error
	if err := s.repo.Remove(ctx, s.key); err != nil {
		warning = fmt.Errorf("%w: borrar snapshot: %w", domain.ErrPersistFailed, err)
		s.log.Warn().Err(err).Msg("no se pudo borrar el borrador persistido")
	}
	if err := s.persist(ctx, s.current); err != nil {
		warning = errors.Join(warning, err)
	}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.emit(listeners, Event{Kind: EventCleared, Draft: out, Warning: warning})
	return out, warning
}

// apply ejecuta fn sobre una copia del borrador. Si fn informa cambio, la copia pasa a
// ser el borrador vigente, se persiste y se notifica. Sin cambio no hay escritura ni evento.
func (s *Store) apply(
	ctx context.Context,
	kind EventKind,
	fn func(d entity.InvoiceDraft) (entity.InvoiceDraft, bool),
) (entity.InvoiceDraft, error) {
	s.mu.Lock()
	next, changed := fn(s.current.Clone())
	if !changed {
		out := s.current.Clone()
		s.mu.Unlock()
		return out, nil
	}
	s.current = next
	out := next.Clone()
	warning := s.persist(ctx, next)
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.emit(listeners, Event{Kind: kind, Draft: out, Warning: warning})
	return out, warning
}

// persist escribe el snapshot completo. Se llama con mu tomado.
func (s *Store) persist(ctx context.Context, d entity.InvoiceDraft) error {
	data, err := EncodeSnapshot(d)
	if err == nil {
		err = s.repo.Set(ctx, s.key, data)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo persistir el borrador; se conserva en memoria")
		return fmt.Errorf("%w: %w", domain.ErrPersistFailed, err)
	}
	return nil
}

func (s *Store) readSnapshot(ctx context.Context) (entity.InvoiceDraft, error) {
	data, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return entity.InvoiceDraft{}, err
		}
		return entity.InvoiceDraft{}, fmt.Errorf("leer snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

func (s *Store) freshDraft() entity.InvoiceDraft {
	return NewDefaultDraft(s.clock(), s.ids.NewID())
}

// newItemID pide ids hasta obtener uno que no esté en el borrador.
func (s *Store) newItemID(d entity.InvoiceDraft) string {
	for {
		id := s.ids.NewID()
		if id != "" && d.IndexOf(id) < 0 {
			return id
		}
	}
}

// snapshotListeners copia la lista de suscriptores. Se llama con mu tomado.
func (s *Store) snapshotListeners() []subscription {
	if len(s.listeners) == 0 {
		return nil
	}
	out := make([]subscription, len(s.listeners))
	copy(out, s.listeners)
	return out
}

// emit entrega a cada listener su propia copia del borrador.
func (s *Store) emit(listeners []subscription, ev Event) {
	for _, sub := range listeners {
		e := ev
		e.Draft = ev.Draft.Clone()
		sub.fn(e)
	}
}

func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func itemIDs(d entity.InvoiceDraft) []string {
	ids := make([]string, 0, len(d.Items))
	for _, it := range d.Items {
		ids = append(ids, it.ID)
	}
	return ids
}
