package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-draft/internal/application/draft"
	"github.com/jhoicas/invoice-draft/internal/application/preview"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store     *draft.Store
	Preview   *preview.UseCase
	JWTSecret string
	Logger    *zerolog.Logger // opcional
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := zerolog.Nop()
	if deps.Logger != nil {
		log = deps.Logger.With().Str("component", "http").Logger()
	}

	api := app.Group("/api")

	// Borrador (protegido solo si hay JWT_SECRET)
	drafts := api.Group("/draft", AuthMiddleware(deps.JWTSecret))
	draftHandler := NewDraftHandler(deps.Store, deps.Preview, log)
	drafts.Get("/", draftHandler.Get)
	drafts.Delete("/", draftHandler.Clear)
	drafts.Put("/fields/:field", draftHandler.UpdateField)
	drafts.Post("/items", draftHandler.AddItem)
	drafts.Delete("/items/:id", draftHandler.RemoveItem)
	drafts.Put("/items/:id/:field", draftHandler.UpdateItem)
	drafts.Get("/totals", draftHandler.Totals)
	drafts.Get("/preview", draftHandler.Preview)
	drafts.Get("/print", draftHandler.Print)

	// Stream de cambios (SSE)
	eventsHandler := NewEventsHandler(deps.Store, log)
	drafts.Get("/events", eventsHandler.Stream)
}
