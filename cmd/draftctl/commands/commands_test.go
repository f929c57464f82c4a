package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-draft/cmd/draftctl/commands"
	"github.com/jhoicas/invoice-draft/internal/application/dto"
	pkgjwt "github.com/jhoicas/invoice-draft/pkg/jwt"
)

// run ejecuta draftctl contra dir y devuelve stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithStderr(t, dir, args...)
	return out, err
}

func runWithStderr(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := commands.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--dir", dir}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("DRAFT_STORAGE", "file")
	t.Setenv("DRAFT_ITEM_IDS", "sequence")
	t.Setenv("JWT_SECRET", "")
	return t.TempDir()
}

func showDraft(t *testing.T, dir string) dto.DraftResponse {
	t.Helper()
	out, err := run(t, dir, "show")
	require.NoError(t, err)
	var resp dto.DraftResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func TestCLI_FlujoCompleto(t *testing.T) {
	dir := setupEnv(t)

	first := showDraft(t, dir).Draft.Items[0].ID

	_, err := run(t, dir, "set", "companyName", "ACME")
	require.NoError(t, err)
	_, err = run(t, dir, "set", "tax", "10")
	require.NoError(t, err)
	_, err = run(t, dir, "item", "set", first, "quantity", "2")
	require.NoError(t, err)
	_, err = run(t, dir, "item", "set", first, "price", "10")
	require.NoError(t, err)

	out, err := run(t, dir, "item", "add")
	require.NoError(t, err)
	second := strings.TrimSpace(out)
	require.NotEmpty(t, second)
	_, err = run(t, dir, "item", "set", second, "price", "5")
	require.NoError(t, err)

	resp := showDraft(t, dir)
	assert.Equal(t, "ACME", resp.Draft.CompanyName)
	assert.Equal(t, "27.5", resp.Totals.Total)

	out, err = run(t, dir, "totals")
	require.NoError(t, err)
	assert.Contains(t, out, "subtotal\t25.00")
	assert.Contains(t, out, "total\t27.50")

	_, err = run(t, dir, "item", "rm", second)
	require.NoError(t, err)
	assert.Len(t, showDraft(t, dir).Draft.Items, 1)
}

func TestCLI_ClearBorraElGuardado(t *testing.T) {
	dir := setupEnv(t)
	_, err := run(t, dir, "set", "notes", "hola")
	require.NoError(t, err)

	_, err = run(t, dir, "clear")
	require.NoError(t, err)

	assert.Empty(t, showDraft(t, dir).Draft.Notes)
}

func TestCLI_ErroresDeArgumentos(t *testing.T) {
	dir := setupEnv(t)

	_, err := run(t, dir, "set", "items", "x")
	assert.Error(t, err)

	_, err = run(t, dir, "item", "set", "no-existe", "price", "1")
	assert.Error(t, err)

	_, err = run(t, dir, "item", "set", "1", "color", "rojo")
	assert.Error(t, err)
}

func TestCLI_Print(t *testing.T) {
	dir := setupEnv(t)
	target := filepath.Join(t.TempDir(), "out.pdf")

	out, err := run(t, dir, "print", "--out", target)
	require.NoError(t, err)
	assert.Equal(t, target, strings.TrimSpace(out))

	doc, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestCLI_Token(t *testing.T) {
	dir := setupEnv(t)
	_, err := run(t, dir, "token")
	assert.Error(t, err, "sin JWT_SECRET no se emite token")

	t.Setenv("JWT_SECRET", "cli-secret")
	out, err := run(t, dir, "token", "--subject", "ana")
	require.NoError(t, err)

	subject, err := pkgjwt.Parse("cli-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ana", subject)
}

// Con ids UUID cada ejecución es una sesión nueva; el borrador por defecto debe
// quedar guardado para que los ids que imprime show sirvan en la siguiente.
func TestCLI_IdsUUIDEstablesEntreEjecuciones(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("DRAFT_ITEM_IDS", "uuid")

	first := showDraft(t, dir)
	second := showDraft(t, dir)
	assert.Equal(t, first.Draft, second.Draft)

	id := first.Draft.Items[0].ID
	_, err := run(t, dir, "item", "set", id, "price", "10")
	require.NoError(t, err)
	assert.Equal(t, "10", showDraft(t, dir).Totals.Total)

	_, err = run(t, dir, "clear")
	require.NoError(t, err)
	cleared := showDraft(t, dir)
	assert.Equal(t, cleared.Draft, showDraft(t, dir).Draft)
	_, err = run(t, dir, "item", "set", cleared.Draft.Items[0].ID, "description", "Horas")
	require.NoError(t, err)
}

func TestCLI_FalloDeEscrituraSeInforma(t *testing.T) {
	dir := setupEnv(t)
	// Un directorio en el lugar del snapshot hace fallar lectura y escritura.
	blocked := filepath.Join(dir, "invoiceData.json")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "x"), 0o700))

	out, err := run(t, dir, "set", "notes", "hola")
	require.NoError(t, err)
	var resp dto.DraftResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "hola", resp.Draft.Notes, "el cambio se aplica aunque no se guarde")
	assert.NotEmpty(t, resp.Warning)

	_, stderr, err := runWithStderr(t, dir, "item", "add")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning:")
}
