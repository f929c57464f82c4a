package draft_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-draft/internal/application/draft"
)

func TestNewDefaultDraft_FechaEnUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	now := time.Date(2024, 3, 15, 22, 0, 0, 0, bogota) // 2024-03-16 03:00 UTC

	d := draft.NewDefaultDraft(now, "1")
	assert.Equal(t, "2024-03-16", d.Date)
	assert.Equal(t, "INV-1710558000000", d.InvoiceNumber)
}
