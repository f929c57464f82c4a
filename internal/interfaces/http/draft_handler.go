package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-draft/internal/application/draft"
	"github.com/jhoicas/invoice-draft/internal/application/dto"
	"github.com/jhoicas/invoice-draft/internal/application/preview"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

// DraftHandler expone las operaciones del Draft Store.
type DraftHandler struct {
	store   *draft.Store
	preview *preview.UseCase
	log     zerolog.Logger
}

// NewDraftHandler construye el handler.
func NewDraftHandler(store *draft.Store, pv *preview.UseCase, log zerolog.Logger) *DraftHandler {
	return &DraftHandler{store: store, preview: pv, log: log}
}

// Get godoc
// @Summary      Borrador vigente
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DraftResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/draft [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.NewDraftResponse(h.store.Current(), nil))
}

// UpdateField godoc
// @Summary      Actualizar un campo del borrador
// @Description  Campos de texto guardan el valor tal cual; tax espera un número. Campo desconocido o items no cambian nada.
// @Tags         draft
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        field  path  string                  true  "invoiceNumber, date, companyName, ..., tax, notes"
// @Param        body   body  dto.UpdateFieldRequest  true  "value"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/draft/fields/{field} [put]
func (h *DraftHandler) UpdateField(c *fiber.Ctx) error {
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, warning := h.store.UpdateField(c.Context(), entity.DraftField(c.Params("field")), in.Value)
	return h.respond(c, d, warning)
}

// AddItem godoc
// @Summary      Agregar línea
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/draft/items [post]
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	d, warning := h.store.AddItem(c.Context())
	return h.respond(c, d, warning)
}

// RemoveItem godoc
// @Summary      Quitar línea
// @Description  La única línea del borrador no se puede quitar; en ese caso o con id desconocido el borrador no cambia.
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id de la línea"
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/draft/items/{id} [delete]
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	d, warning := h.store.RemoveItem(c.Context(), c.Params("id"))
	return h.respond(c, d, warning)
}

// UpdateItem godoc
// @Summary      Actualizar un campo de una línea
// @Description  description guarda el texto; quantity y price se interpretan como número (no numérico = 0).
// @Tags         draft
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                 true  "id de la línea"
// @Param        field  path  string                 true  "description, quantity, price"
// @Param        body   body  dto.UpdateItemRequest  true  "value"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/draft/items/{id}/{field} [put]
func (h *DraftHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, warning := h.store.UpdateItem(c.Context(), c.Params("id"), entity.ItemField(c.Params("field")), in.Value)
	return h.respond(c, d, warning)
}

// Clear godoc
// @Summary      Limpiar el borrador
// @Description  Vuelve a un borrador nuevo y borra el guardado.
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/draft [delete]
func (h *DraftHandler) Clear(c *fiber.Ctx) error {
	d, warning := h.store.Clear(c.Context())
	return h.respond(c, d, warning)
}

// Totals godoc
// @Summary      Subtotal, impuesto y total
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalsResponse
// @Router       /api/draft/totals [get]
func (h *DraftHandler) Totals(c *fiber.Ctx) error {
	return c.JSON(dto.NewTotalsResponse(h.store.Totals()))
}

// Preview godoc
// @Summary      Vista previa imprimible
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  preview.View
// @Router       /api/draft/preview [get]
func (h *DraftHandler) Preview(c *fiber.Ctx) error {
	return c.JSON(h.preview.Build(h.store.Current()))
}

// Print godoc
// @Summary      Imprimir el borrador (PDF)
// @Tags         draft
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/draft/print [get]
func (h *DraftHandler) Print(c *fiber.Ctx) error {
	doc, filename, err := h.preview.Print(c.Context(), h.store.Current())
	if err != nil {
		h.log.Error().Err(err).Msg("imprimir borrador")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(doc)
}

// respond devuelve 200 con el borrador; una falla de escritura viaja como warning.
func (h *DraftHandler) respond(c *fiber.Ctx, d entity.InvoiceDraft, warning error) error {
	if warning != nil {
		h.log.Warn().Err(warning).Str("path", c.Path()).Msg("cambio aplicado sin persistir")
	}
	return c.JSON(dto.NewDraftResponse(d, warning))
}
