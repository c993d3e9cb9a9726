// Package fetch mantiene el estado de una consulta al backend (datos, cargando,
// error) y la vuelve a ejecutar cuando cambian sus dependencias.
package fetch

import (
	"context"
	"sync"

	"github.com/google/go-cmp/cmp"

	"github.com/jhoicas/impilo-stock/pkg/apierror"
)

// State instantánea del estado de una consulta.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     *apierror.Error
}

// Fetcher función que consulta el backend.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Options callbacks y valores iniciales de una Query.
type Options[T any] struct {
	InitialData      *T
	OnSuccess        func(T)
	OnError          func(*apierror.Error)
	OnChange         func(State[T]) // cada transición de estado; se llama sin locks tomados
	SkipInitialFetch bool
}

// Query consulta con estado. Cada disparo (Watch con dependencias nuevas o
// Refetch) pasa por Loading=true y termina exactamente una vez en datos o en error.
// El resultado de un disparo reemplazado por otro más nuevo, o que llega
// después de Close, se descarta.
type Query[T any] struct {
	fetch Fetcher[T]
	opts  Options[T]

	mu      sync.Mutex
	state   State[T]
	deps    []any
	watched bool
	gen     uint64
	closed  bool
}

// New construye la consulta. No dispara nada hasta Watch o Refetch.
func New[T any](fetch Fetcher[T], opts Options[T]) *Query[T] {
	q := &Query[T]{fetch: fetch, opts: opts}
	if opts.InitialData != nil {
		q.state.Data = *opts.InitialData
		q.state.HasData = true
	}
	q.state.Loading = !opts.SkipInitialFetch
	return q
}

// State devuelve una copia del estado actual.
func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Watch dispara la consulta si deps difiere de las dependencias del último
// disparo (la primera llamada siempre dispara). Con SkipInitialFetch solo
// registra deps y nunca dispara; la consulta se ejecuta únicamente con Refetch.
// La consulta corre en otra goroutine; el canal devuelto se cierra cuando
// termina o de inmediato si no hubo disparo.
func (q *Query[T]) Watch(ctx context.Context, deps ...any) <-chan struct{} {
	done := make(chan struct{})

	q.mu.Lock()
	first := !q.watched
	q.watched = true
	changed := first || !cmp.Equal(q.deps, deps)
	q.deps = deps
	if q.closed || !changed || q.opts.SkipInitialFetch {
		q.mu.Unlock()
		close(done)
		return done
	}
	gen, st := q.begin()
	q.mu.Unlock()
	q.notify(st)

	go func() {
		defer close(done)
		q.run(ctx, gen)
	}()
	return done
}

// Refetch vuelve a ejecutar la consulta en la goroutine del llamador y devuelve
// su resultado. El estado sigue las mismas transiciones que Watch.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		var zero T
		return zero, apierror.Wrap(apierror.UnexpectedMessage, apierror.StatusNetwork, context.Canceled)
	}
	gen, st := q.begin()
	q.mu.Unlock()
	q.notify(st)
	return q.run(ctx, gen)
}

// Close descarta los resultados pendientes y los futuros. No cancela las
// peticiones en curso; para eso se cancela el ctx pasado a Watch.
func (q *Query[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.gen++
	q.mu.Unlock()
}

// begin marca el inicio de un disparo y devuelve el estado a notificar. Requiere q.mu.
func (q *Query[T]) begin() (uint64, State[T]) {
	q.gen++
	q.state.Loading = true
	q.state.Err = nil
	return q.gen, q.state
}

func (q *Query[T]) run(ctx context.Context, gen uint64) (T, error) {
	data, err := q.fetch(ctx)

	q.mu.Lock()
	if q.closed || gen != q.gen {
		q.mu.Unlock()
		return data, err
	}
	q.state.Loading = false
	var apiErr *apierror.Error
	if err != nil {
		apiErr = apierror.As(err)
		q.state.Err = apiErr
	} else {
		q.state.Data = data
		q.state.HasData = true
	}
	st := q.state
	q.mu.Unlock()
	q.notify(st)

	if apiErr != nil {
		if q.opts.OnError != nil {
			q.opts.OnError(apiErr)
		}
		return data, apiErr
	}
	if q.opts.OnSuccess != nil {
		q.opts.OnSuccess(data)
	}
	return data, nil
}

// notify avisa OnChange fuera de q.mu: el callback puede llamar a State,
// Watch o Refetch.
func (q *Query[T]) notify(st State[T]) {
	if q.opts.OnChange != nil {
		q.opts.OnChange(st)
	}
}
