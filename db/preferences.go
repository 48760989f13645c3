package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-redis/redis/v8"

	"campus-intranet-go/locale"
	"campus-intranet-go/models"
)

// Preference keys as they appear in durable storage.
const (
	ThemeKey    = "theme"
	LanguageKey = "language"
)

// ErrUnsupportedLanguage is returned when a language outside fr/en/es/de is set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// PreferenceStore is a string-keyed durable key/value store.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryPreferences keeps preferences in process memory. It is used when no
// Redis server is configured.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryPreferences creates an empty in-memory preference store.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: map[string]string{}}
}

// Get implements PreferenceStore.
func (m *MemoryPreferences) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements PreferenceStore.
func (m *MemoryPreferences) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// RedisPreferences stores preferences as plain Redis strings under a prefix.
type RedisPreferences struct {
	Client *redis.Client
	Prefix string
}

// NewRedisPreferences creates a Redis-backed preference store.
func NewRedisPreferences(client *redis.Client, prefix string) *RedisPreferences {
	return &RedisPreferences{Client: client, Prefix: prefix}
}

func (r *RedisPreferences) key(name string) string {
	return r.Prefix + name
}

// Get implements PreferenceStore.
func (r *RedisPreferences) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get preference %s from Redis: %w", key, err)
	}
	return val, true, nil
}

// Set implements PreferenceStore.
func (r *RedisPreferences) Set(ctx context.Context, key, value string) error {
	if err := r.Client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set preference %s in Redis: %w", key, err)
	}
	return nil
}

// RedisOptions selects the Redis server holding preferences.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a Redis client and pings it.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", opts.Addr, err)
	}

	slog.Info("connected to Redis", "addr", opts.Addr, "db", opts.DB)
	return rdb, nil
}

// Preferences holds the process-wide theme and language and writes every
// change through to a PreferenceStore.
type Preferences struct {
	mu       sync.RWMutex
	backend  PreferenceStore
	theme    models.Theme
	language models.Language
}

// NewPreferences creates preferences with a light theme and the given default
// language. Call Load to apply persisted values.
func NewPreferences(backend PreferenceStore, defaultLanguage models.Language) *Preferences {
	if backend == nil {
		backend = NewMemoryPreferences()
	}
	if _, ok := locale.Parse(string(defaultLanguage)); !ok {
		defaultLanguage = models.LanguageFrench
	}
	return &Preferences{
		backend:  backend,
		theme:    models.ThemeLight,
		language: defaultLanguage,
	}
}

// Load re-applies persisted preferences. Unknown stored values are ignored.
func (p *Preferences) Load(ctx context.Context) error {
	theme, ok, err := p.backend.Get(ctx, ThemeKey)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if ok {
		switch models.Theme(theme) {
		case models.ThemeLight, models.ThemeDark:
			p.theme = models.Theme(theme)
		default:
			slog.Warn("ignoring stored theme", "value", theme)
		}
	}

	lang, ok, err := p.backend.Get(ctx, LanguageKey)
	if err != nil {
		return fmt.Errorf("load language: %w", err)
	}
	if ok {
		if parsed, valid := locale.Parse(lang); valid {
			p.language = parsed
		} else {
			slog.Warn("ignoring stored language", "value", lang)
		}
	}
	return nil
}

// Theme returns the current theme.
func (p *Preferences) Theme() models.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Language returns the current language.
func (p *Preferences) Language() models.Language {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.language
}

// ToggleTheme flips between light and dark and persists the result. The
// in-memory theme changes even when persisting fails.
func (p *Preferences) ToggleTheme(ctx context.Context) (models.Theme, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.theme == models.ThemeDark {
		p.theme = models.ThemeLight
	} else {
		p.theme = models.ThemeDark
	}
	if err := p.backend.Set(ctx, ThemeKey, string(p.theme)); err != nil {
		return p.theme, fmt.Errorf("persist theme: %w", err)
	}
	return p.theme, nil
}

// SetLanguage sets and persists the language.
func (p *Preferences) SetLanguage(ctx context.Context, lang models.Language) error {
	parsed, ok := locale.Parse(string(lang))
	if !ok || string(parsed) != string(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.language = parsed
	if err := p.backend.Set(ctx, LanguageKey, string(parsed)); err != nil {
		return fmt.Errorf("persist language: %w", err)
	}
	return nil
}
