// backend_headless.go - no-op output backend for tests and CI

package glaive

type headlessPlayer struct {
	started   bool
	transport Transport
}

func newHeadlessPlayer(transport Transport) *headlessPlayer {
	return &headlessPlayer{transport: transport}
}

func (h *headlessPlayer) Start()          { h.started = true }
func (h *headlessPlayer) Stop()           { h.started = false }
func (h *headlessPlayer) Close()          { h.started = false }
func (h *headlessPlayer) IsStarted() bool { return h.started }
