package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/invoice-draft/internal/application/draft"
	"github.com/jhoicas/invoice-draft/internal/application/dto"
	domaindraft "github.com/jhoicas/invoice-draft/internal/domain/draft"
)

// eventSnapshot primer evento del stream: el borrador al momento de conectarse.
const eventSnapshot = "snapshot"

// Tamaño del buffer por cliente. Si el cliente no consume, los eventos extra se descartan.
const eventsBuffer = 16

const keepAliveInterval = 15 * time.Second

// EventsHandler publica los cambios del borrador como Server-Sent Events.
type EventsHandler struct {
	store *draft.Store
	log   zerolog.Logger
}

// NewEventsHandler construye el handler.
func NewEventsHandler(store *draft.Store, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{store: store, log: log}
}

// Stream godoc
// @Summary      Stream de cambios del borrador (SSE)
// @Tags         draft
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200  {object}  dto.DraftEvent
// @Router       /api/draft/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	events := make(chan dto.DraftEvent, eventsBuffer)
	cancel := h.store.Subscribe(func(ev draft.Event) {
		select {
		case events <- toDraftEvent(string(ev.Kind), ev):
		default:
			h.log.Debug().Str("kind", string(ev.Kind)).Msg("cliente SSE lento, evento descartado")
		}
	})
	first := toDraftEvent(eventSnapshot, draft.Event{Draft: h.store.Current()})
	done := c.Context().Done()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		if err := writeEvent(w, first); err != nil {
			return
		}
		for {
			select {
			case ev := <-events:
				if err := writeEvent(w, ev); err != nil {
					h.log.Debug().Err(err).Msg("cliente SSE desconectado")
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}))
	return nil
}

func toDraftEvent(kind string, ev draft.Event) dto.DraftEvent {
	out := dto.DraftEvent{
		Kind:   kind,
		Draft:  ev.Draft,
		Totals: dto.NewTotalsResponse(domaindraft.Compute(ev.Draft)),
	}
	if ev.Warning != nil {
		out.Warning = ev.Warning.Error()
	}
	return out
}

// writeEvent escribe un evento en formato SSE y hace flush.
func writeEvent(w *bufio.Writer, ev dto.DraftEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data); err != nil {
		return err
	}
	return w.Flush()
}
