// Package devtools holds the process-level development-tooling hook a
// form announces itself to. Installing a hook is optional; when none
// is installed, form mount and unmount carry on silently.
package devtools

import "sync"

// Hook receives form registrations from the engine. Inject is called
// when a form mounts, Unmount when it unmounts.
type Hook interface {
	Inject(id string, form any)
	Unmount(id string)
}

var (
	mu     sync.RWMutex
	active Hook
)

// Install makes hook the process-level hook. A nil hook clears it.
func Install(hook Hook) {
	mu.Lock()
	defer mu.Unlock()
	active = hook
}

// Uninstall clears the process-level hook.
func Uninstall() {
	Install(nil)
}

// Installed returns the process-level hook, or nil when none is set.
func Installed() Hook {
	mu.RLock()
	defer mu.RUnlock()
	return active
}
