package billing

import "sync"

// InFlightGuard garantiza a lo sumo un envío en curso por documento dentro del proceso.
// Entre procesos la exclusión la da el cambio de estado condicional en la base de datos.
type InFlightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewInFlightGuard crea un guard vacío.
func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{active: make(map[string]struct{})}
}

// TryAcquire reserva key. ok=false si ya hay un intento activo; release libera la reserva
// y puede llamarse más de una vez.
func (g *InFlightGuard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return func() {}, false
	}
	g.active[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, true
}

// InFlight indica si key tiene un intento activo.
func (g *InFlightGuard) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[key]
	return busy
}
