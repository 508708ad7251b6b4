package config

import (
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
)

// Holder owns the live configuration. Readers get a consistent snapshot;
// Reload swaps it only when the new value validates.
type Holder struct {
	mu  sync.Mutex
	v   *viper.Viper
	cur atomic.Pointer[Config]
}

func NewHolder() (*Holder, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	return NewStaticHolder(cfg), nil
}

// NewStaticHolder wraps an already built config. Reload re-reads the
// environment.
func NewStaticHolder(cfg *Config) *Holder {
	h := &Holder{v: newViper()}
	h.cur.Store(cfg)
	return h
}

func (h *Holder) Current() *Config {
	return h.cur.Load()
}

func (h *Holder) Scheduling() schedule.Settings {
	return h.Current().Scheduling()
}

// FallbackTimezone is used for shops that carry no valid timezone.
func (h *Holder) FallbackTimezone() string {
	return h.Current().ShopTimezone
}

func (h *Holder) Reload() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.v = newViper()
	cfg, err := load(h.v)
	if err != nil {
		return err
	}
	h.cur.Store(cfg)
	return nil
}

// Watch reloads whenever CONFIG_FILE changes on disk. It is a no-op without a
// config file.
func (h *Holder) Watch(onReload func(cfg *Config, err error)) {
	h.mu.Lock()
	v := h.v
	h.mu.Unlock()

	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(fsnotify.Event) {
		err := h.Reload()
		if onReload != nil {
			onReload(h.Current(), err)
		}
	})
	v.WatchConfig()
}
