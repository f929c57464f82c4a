package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-draft/internal/domain"
	"github.com/jhoicas/invoice-draft/internal/infrastructure/memory"
)

func TestSnapshotRepo_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()

	_, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	data := []byte(`{"a":1}`)
	require.NoError(t, repo.Set(ctx, "k", data))
	data[0] = 'X' // el repo guarda su propia copia

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, repo.Remove(ctx, "k"))
	require.NoError(t, repo.Remove(ctx, "k"))
	_, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
