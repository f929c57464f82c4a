package draft

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// UUIDGenerator genera ids de línea UUID v4.
type UUIDGenerator struct{}

// NewID implementa IDGenerator.
func (UUIDGenerator) NewID() string { return uuid.New().String() }

// SequenceGenerator genera ids numéricos crecientes ("1", "2", ...), compatibles
// con el formato heredado de ids numéricos.
type SequenceGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewSequenceGenerator crea una secuencia que empieza después de start.
func NewSequenceGenerator(start int64) *SequenceGenerator {
	return &SequenceGenerator{last: start}
}

// NewID implementa IDGenerator.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last++
	return strconv.FormatInt(g.last, 10)
}

// Seed adelanta la secuencia por encima del mayor id numérico existente.
// Nunca retrocede: los ids ya emitidos en la sesión no se reutilizan.
func (g *SequenceGenerator) Seed(existing []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range existing {
		n, err := strconv.ParseInt(id, 10, 64)
		if err == nil && n > g.last {
			g.last = n
		}
	}
}
