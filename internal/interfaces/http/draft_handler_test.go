package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-draft/internal/application/draft"
	"github.com/jhoicas/invoice-draft/internal/application/dto"
	"github.com/jhoicas/invoice-draft/internal/application/preview"
	"github.com/jhoicas/invoice-draft/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-draft/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/invoice-draft/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type flakyRepo struct {
	*memory.SnapshotRepo
	fail bool
}

func (r *flakyRepo) Set(ctx context.Context, key string, data []byte) error {
	if r.fail {
		return errors.New("disco lleno")
	}
	return r.SnapshotRepo.Set(ctx, key, data)
}

type testEnv struct {
	app   *fiber.App
	store *draft.Store
	repo  *flakyRepo
}

func newTestEnv(t *testing.T, secret string) testEnv {
	t.Helper()
	repo := &flakyRepo{SnapshotRepo: memory.NewSnapshotRepository()}
	store := draft.NewStore(repo, draft.StoreConfig{
		IDs:   draft.NewSequenceGenerator(0),
		Clock: func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) },
	})
	store.Load(context.Background())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Store:     store,
		Preview:   preview.NewUseCase(pdf.NewMarotoPDFGenerator(""), preview.Config{}),
		JWTSecret: secret,
	})
	return testEnv{app: app, store: store, repo: repo}
}

func (e testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeDraft(t *testing.T, resp *http.Response) dto.DraftResponse {
	t.Helper()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.DraftResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDraftHandler_Get(t *testing.T) {
	env := newTestEnv(t, "")
	out := decodeDraft(t, env.do(t, http.MethodGet, "/api/draft", ""))

	assert.Equal(t, "INV-1710498600000", out.Draft.InvoiceNumber)
	assert.Equal(t, "2024-03-15", out.Draft.Date)
	require.Len(t, out.Draft.Items, 1)
	assert.Equal(t, "0", out.Totals.Total)
	assert.Empty(t, out.Warning)
}

func TestDraftHandler_UpdateField(t *testing.T) {
	env := newTestEnv(t, "")

	out := decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/fields/companyName", `{"value":"ACME"}`))
	assert.Equal(t, "ACME", out.Draft.CompanyName)

	out = decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/fields/tax", `{"value":10}`))
	assert.Equal(t, 10.0, out.Draft.Tax)

	_, err := env.repo.Get(context.Background(), draft.DefaultStorageKey)
	assert.NoError(t, err, "cada cambio debe persistirse")
}

func TestDraftHandler_CampoDesconocidoNoCambiaNada(t *testing.T) {
	env := newTestEnv(t, "")
	before := env.store.Current()

	out := decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/fields/items", `{"value":"x"}`))
	assert.Equal(t, before, out.Draft)
}

func TestDraftHandler_CuerpoInvalido(t *testing.T) {
	env := newTestEnv(t, "")
	resp := env.do(t, http.MethodPut, "/api/draft/fields/notes", `{`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_BODY")
}

func TestDraftHandler_LineasYTotales(t *testing.T) {
	env := newTestEnv(t, "")
	first := env.store.Current().Items[0].ID

	out := decodeDraft(t, env.do(t, http.MethodPost, "/api/draft/items", ""))
	require.Len(t, out.Draft.Items, 2)
	second := out.Draft.Items[1].ID
	assert.NotEqual(t, first, second)

	decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/items/"+first+"/quantity", `{"value":"2"}`))
	decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/items/"+first+"/price", `{"value":"10"}`))
	decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/items/"+second+"/price", `{"value":"5"}`))
	out = decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/fields/tax", `{"value":10}`))
	assert.Equal(t, "25", out.Totals.Subtotal)
	assert.Equal(t, "2.5", out.Totals.TaxAmount)
	assert.Equal(t, "27.5", out.Totals.Total)

	resp := env.do(t, http.MethodGet, "/api/draft/totals", "")
	defer resp.Body.Close()
	var totals dto.TotalsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&totals))
	assert.Equal(t, "27.5", totals.Total)

	out = decodeDraft(t, env.do(t, http.MethodDelete, "/api/draft/items/"+second, ""))
	require.Len(t, out.Draft.Items, 1)
	assert.Equal(t, "22", out.Totals.Total)
}

func TestDraftHandler_NoQuitaLaUnicaLinea(t *testing.T) {
	env := newTestEnv(t, "")
	only := env.store.Current().Items[0].ID

	out := decodeDraft(t, env.do(t, http.MethodDelete, "/api/draft/items/"+only, ""))
	require.Len(t, out.Draft.Items, 1)
	assert.Equal(t, only, out.Draft.Items[0].ID)
}

func TestDraftHandler_Clear(t *testing.T) {
	env := newTestEnv(t, "")
	decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/fields/notes", `{"value":"hola"}`))

	out := decodeDraft(t, env.do(t, http.MethodDelete, "/api/draft", ""))
	assert.Empty(t, out.Draft.Notes)

	_, err := env.repo.Get(context.Background(), draft.DefaultStorageKey)
	require.NoError(t, err)

	// Una sesión nueva recupera el borrador limpio.
	again := draft.NewStore(env.repo, draft.StoreConfig{}).Load(context.Background())
	assert.Equal(t, out.Draft, again)
}

func TestDraftHandler_FalloDeEscrituraEsAdvertencia(t *testing.T) {
	env := newTestEnv(t, "")
	env.repo.fail = true

	out := decodeDraft(t, env.do(t, http.MethodPut, "/api/draft/fields/customerName", `{"value":"Globex"}`))
	assert.Equal(t, "Globex", out.Draft.CustomerName, "el cambio se aplica en memoria")
	assert.NotEmpty(t, out.Warning)
}

func TestDraftHandler_Preview(t *testing.T) {
	env := newTestEnv(t, "")
	resp := env.do(t, http.MethodGet, "/api/draft/preview", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v preview.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Equal(t, preview.PlaceholderCompanyName, v.From.Name)
	assert.Equal(t, "3/15/2024", v.Date)
	assert.False(t, v.ShowTax)
}

func TestDraftHandler_Print(t *testing.T) {
	env := newTestEnv(t, "")
	resp := env.do(t, http.MethodGet, "/api/draft/print", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice_INV-1710498600000.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestDraftHandler_ConSecretExigeToken(t *testing.T) {
	env := newTestEnv(t, testJWTSecret)

	resp := env.do(t, http.MethodGet, "/api/draft", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/draft", nil)
	req.Header.Set("Authorization", bearer(t))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	decodeDraft(t, resp)
}
