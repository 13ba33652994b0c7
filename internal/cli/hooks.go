package cli

import (
	"context"
	"sync"

	"github.com/matzehuels/trackgraph/pkg/observability"
)

var phaseLabels = map[observability.Phase]string{
	observability.PhaseMeasure: "Measuring annotations",
	observability.PhaseArrange: "Arranging segments",
	observability.PhaseDock:    "Docking annotations",
}

// spinnerHooks shows layout phases on a spinner and collects annotations
// that could not be placed.
type spinnerHooks struct {
	observability.NoopLayoutHooks
	spinner *Spinner

	mu      sync.Mutex
	skipped []string
}

func (h *spinnerHooks) OnPhaseStart(_ context.Context, phase observability.Phase) {
	if label, ok := phaseLabels[phase]; ok {
		h.spinner.Update(label + "...")
	}
}

func (h *spinnerHooks) OnSkipped(_ context.Context, train, event string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.skipped = append(h.skipped, train+": "+event)
}

func (h *spinnerHooks) Skipped() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.skipped...)
}

// withSpinnerHooks registers hooks for the duration of fn.
func withSpinnerHooks(s *Spinner, fn func(h *spinnerHooks) error) error {
	h := &spinnerHooks{spinner: s}
	observability.SetLayoutHooks(h)
	defer observability.SetLayoutHooks(observability.NoopLayoutHooks{})
	return fn(h)
}
