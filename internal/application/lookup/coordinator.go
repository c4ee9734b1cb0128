// Package lookup coordina búsquedas incrementales (autocompletado) de contrapartes y catálogo.
package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain"
)

// Coordinator mantiene a lo sumo una búsqueda vigente por clave de sesión. Una búsqueda nueva
// cancela la anterior y cualquier resultado que llegue después de ser reemplazada se descarta.
type Coordinator struct {
	debounce time.Duration

	mu    sync.Mutex
	next  uint64
	slots map[string]*slot
}

// slot búsqueda vigente de una sesión. seq sale de un contador global del coordinador,
// así un ticket viejo nunca coincide con un slot creado después de liberar el suyo.
type slot struct {
	seq    uint64
	cancel context.CancelFunc
}

// NewCoordinator crea el coordinador. debounce es la espera antes de ejecutar la consulta;
// 0 ejecuta de inmediato.
func NewCoordinator(debounce time.Duration) *Coordinator {
	return &Coordinator{debounce: debounce, slots: make(map[string]*slot)}
}

// ticket identifica una búsqueda concreta dentro de una sesión.
type ticket struct {
	c   *Coordinator
	key string
	seq uint64
}

func (c *Coordinator) begin(parent context.Context, key string) (context.Context, ticket) {
	ctx, cancel := context.WithCancel(parent)
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[key]
	if !ok {
		s = &slot{}
		c.slots[key] = s
	} else if s.cancel != nil {
		s.cancel()
	}
	c.next++
	s.seq = c.next
	s.cancel = cancel
	return ctx, ticket{c: c, key: key, seq: s.seq}
}

// current indica si la búsqueda sigue siendo la última de su sesión.
func (t ticket) current() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	s, ok := t.c.slots[t.key]
	return ok && s.seq == t.seq
}

// finish libera el slot si sigue siendo el vigente.
func (t ticket) finish() {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if s, ok := t.c.slots[t.key]; ok && s.seq == t.seq {
		s.cancel()
		delete(t.c.slots, t.key)
	}
}

// Run ejecuta fn como la búsqueda vigente de key. Devuelve domain.ErrStaleLookup si otra
// búsqueda de la misma sesión la reemplazó antes de terminar, aunque fn haya devuelto datos.
func Run[T any](ctx context.Context, c *Coordinator, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	qctx, t := c.begin(ctx, key)
	defer t.finish()

	if c.debounce > 0 {
		timer := time.NewTimer(c.debounce)
		select {
		case <-timer.C:
		case <-qctx.Done():
			timer.Stop()
			if !t.current() {
				return zero, domain.ErrStaleLookup
			}
			return zero, qctx.Err()
		}
	}

	res, err := fn(qctx)
	if !t.current() {
		return zero, domain.ErrStaleLookup
	}
	if err != nil {
		return zero, err
	}
	return res, nil
}
