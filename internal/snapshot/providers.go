package snapshot

import "sync"

var (
	providerMu sync.RWMutex
	provider   Opener
)

// RegisterOpener installs the process-image provider the command layer uses.
// Providers are platform builds linked in by the final binary; calling this
// twice replaces the previous provider.
func RegisterOpener(o Opener) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = o
}

// DefaultOpener returns the registered provider. ok is false when no
// provider build has been linked in.
func DefaultOpener() (Opener, bool) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider, provider != nil
}
