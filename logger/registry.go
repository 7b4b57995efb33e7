package logger

import (
	"slices"
	"sync"
)

// registry holds the component loggers handed out by Get.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores l under a component name, replacing any previous entry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get returns the logger registered for a component. Unregistered names get
// the global logger tagged with the component, so library code can call Get
// before or without bootstrap.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults registers a component logger derived from the current
// global logger for each name. Call it after Init.
func RegisterDefaults(names ...string) {
	global := GetGlobalLogger()
	for _, name := range names {
		Register(name, global.WithComponent(name))
	}
}

// Names returns the registered component names in sorted order.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.loggers))
	for name := range registry.loggers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
