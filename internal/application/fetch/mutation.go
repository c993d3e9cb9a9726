package fetch

import (
	"context"
	"sync"

	"github.com/jhoicas/impilo-stock/pkg/apierror"
)

// MutationFunc operación de escritura contra el backend.
type MutationFunc[In, T any] func(ctx context.Context, in In) (T, error)

// MutationOptions callbacks de una Mutation.
type MutationOptions[T any] struct {
	OnSuccess func(T)
	OnError   func(*apierror.Error)
}

// Mutation envía escrituras y conserva el estado de la última.
type Mutation[In, T any] struct {
	fn   MutationFunc[In, T]
	opts MutationOptions[T]

	mu    sync.Mutex
	state State[T]
}

func NewMutation[In, T any](fn MutationFunc[In, T], opts MutationOptions[T]) *Mutation[In, T] {
	return &Mutation[In, T]{fn: fn, opts: opts}
}

// State copia del estado de la última mutación.
func (m *Mutation[In, T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Mutate ejecuta la operación. En error devuelve el valor cero de T y el
// *apierror.Error normalizado.
func (m *Mutation[In, T]) Mutate(ctx context.Context, in In) (T, error) {
	m.mu.Lock()
	m.state.Loading = true
	m.state.Err = nil
	m.mu.Unlock()

	out, err := m.fn(ctx, in)

	m.mu.Lock()
	m.state.Loading = false
	if err != nil {
		apiErr := apierror.As(err)
		m.state.Err = apiErr
		m.mu.Unlock()
		if m.opts.OnError != nil {
			m.opts.OnError(apiErr)
		}
		var zero T
		return zero, apiErr
	}
	m.state.Data = out
	m.state.HasData = true
	m.mu.Unlock()
	if m.opts.OnSuccess != nil {
		m.opts.OnSuccess(out)
	}
	return out, nil
}
