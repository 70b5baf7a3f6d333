// Package keyboardrecorder provides a virtual keyboard that records transitions
// in memory instead of injecting them. It backs dry runs and tests.
package keyboardrecorder

import (
	"sort"
	"sync"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// Recorder is an in-memory contracts.VirtualKeyboard.
type Recorder struct {
	logger  contracts.Logger
	mu      sync.Mutex
	batches []contracts.KeyTransitions
	down    map[uint16]bool
	closed  bool
}

// New creates an empty recorder.
func New(logger contracts.Logger) *Recorder {
	return &Recorder{logger: logger, down: make(map[uint16]bool)}
}

// NewVirtualKeyboard matches the platform constructors so the recorder can be
// picked by the keyboard factory.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	options.Logger.Info("Recording virtual keyboard created; no input will be injected")
	return New(options.Logger), nil
}

// Emit records a single transition as its own batch.
func (r *Recorder) Emit(transition contracts.KeyTransition) error {
	return r.EmitMany(contracts.KeyTransitions{transition})
}

// EmitMany records the batch.
func (r *Recorder) EmitMany(transitions contracts.KeyTransitions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return contracts.ErrKeyboardClosed
	}
	if len(transitions) == 0 {
		return nil
	}
	batch := make(contracts.KeyTransitions, len(transitions))
	copy(batch, transitions)
	r.batches = append(r.batches, batch)

	for _, transition := range batch {
		r.down[transition.Key.Code] = transition.Direction == contracts.Press
		r.logger.Debug("Key transition",
			r.logger.Field().String("key", transition.Key.Name),
			r.logger.Field().Int("code", int(transition.Key.Code)),
			r.logger.Field().String("direction", transition.Direction.String()))
	}
	return nil
}

// Close marks the recorder closed. Later writes fail with contracts.ErrKeyboardClosed.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}

// Batches returns a copy of every recorded batch in emission order.
func (r *Recorder) Batches() []contracts.KeyTransitions {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]contracts.KeyTransitions, len(r.batches))
	copy(out, r.batches)
	return out
}

// Transitions returns every recorded transition flattened in emission order.
func (r *Recorder) Transitions() contracts.KeyTransitions {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out contracts.KeyTransitions
	for _, batch := range r.batches {
		out = append(out, batch...)
	}
	return out
}

// Down returns the codes whose last transition was a press, ascending.
func (r *Recorder) Down() []uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var codes []uint16
	for code, down := range r.down {
		if down {
			codes = append(codes, code)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Clear forgets recorded batches. Key state is kept.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
