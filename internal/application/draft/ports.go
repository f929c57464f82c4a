package draft

import "time"

// IDGenerator produce identificadores de línea. Un id emitido no se repite
// dentro de la misma sesión.
type IDGenerator interface {
	NewID() string
}

// IDSeeder lo implementan los generadores que deben continuar por encima de
// los ids ya presentes en un borrador restaurado.
type IDSeeder interface {
	Seed(existing []string)
}

// Clock devuelve la hora actual; se inyecta para poder fijarla en tests.
type Clock func() time.Time
