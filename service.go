package wordmap

import (
	"fmt"

	"github.com/oarkflow/xsync"
)

var engines xsync.IMap[string, *Engine]

func init() {
	engines = xsync.NewMap[string, *Engine]()
}

// GetEngine returns the engine registered under key.
func GetEngine(key string) (*Engine, error) {
	eng, ok := engines.Get(key)
	if !ok {
		return nil, fmt.Errorf("no engine for key %q", key)
	}
	return eng, nil
}

// SetEngine builds a fresh engine from cfg and registers it under key,
// replacing any previous engine with that key.
func SetEngine(key string, cfg *Config) *Engine {
	if cfg == nil {
		cfg = GetConfig(key)
	}
	cfg.Key = key
	eng := New(cfg)
	engines.Set(key, eng)
	return eng
}

// GetOrSetEngine returns the registered engine for key, creating and
// registering one with default config when missing.
func GetOrSetEngine(key string, cfg ...*Config) *Engine {
	if eng, ok := engines.Get(key); ok {
		return eng
	}
	c := GetConfig(key)
	if len(cfg) > 0 && cfg[0] != nil {
		c = MergeConfigs(c, cfg[0])
	}
	return SetEngine(key, c)
}

// AvailableEngines lists the registered engine keys.
func AvailableEngines() []string {
	var keys []string
	engines.ForEach(func(key string, _ *Engine) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// RemoveEngine drops a registered engine.
func RemoveEngine(key string) {
	engines.Del(key)
}
