package messages

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// File is the on-disk format of a message catalog override. Keys are
// symbolic error code names ("KeyMissingOnEntityType") or code numbers.
//
//	messages:
//	  KeyMissingOnEntityType: "Entity type %s needs a key."
//	  "35": "Bad max length %d."
type File struct {
	Messages map[string]string `yaml:"messages"`
}

// Parse decodes catalog overrides.
func Parse(data []byte) (map[edmErrors.ErrorCode]string, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}

	overrides := make(map[edmErrors.ErrorCode]string, len(f.Messages))
	for key, tmpl := range f.Messages {
		code, err := parseCode(key)
		if err != nil {
			return nil, err
		}
		overrides[code] = tmpl
	}
	return overrides, nil
}

// LoadFile reads catalog overrides from path.
func LoadFile(path string) (map[edmErrors.ErrorCode]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read message catalog %s: %w", path, err)
	}
	overrides, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return overrides, nil
}

func parseCode(key string) (edmErrors.ErrorCode, error) {
	if code, ok := edmErrors.ParseErrorCode(key); ok {
		return code, nil
	}
	if n, err := strconv.Atoi(key); err == nil {
		code := edmErrors.ErrorCode(n)
		if _, known := edmErrors.ParseErrorCode(code.String()); known {
			return code, nil
		}
	}
	msg := fmt.Sprintf("unknown error code %q", key)
	if s := edmErrors.SuggestName(key, codeNames()); s != "" {
		msg += " (" + s + ")"
	}
	return 0, errors.New(msg)
}

func codeNames() []string {
	codes := edmErrors.Codes()
	names := make([]string, 0, len(codes))
	for _, c := range codes {
		names = append(names, c.String())
	}
	return names
}

// Catalog is a message catalog that can be replaced while validations run.
// It implements errors.Catalog and is safe for concurrent use.
type Catalog struct {
	base   edmErrors.TemplateCatalog
	logger *slog.Logger

	mu       sync.RWMutex
	current  edmErrors.TemplateCatalog
	path     string
	loadTime time.Time
}

// NewCatalog creates a catalog serving base until overrides are loaded.
// A nil base means the default messages.
func NewCatalog(base edmErrors.TemplateCatalog, logger *slog.Logger) *Catalog {
	if base == nil {
		base = edmErrors.DefaultCatalog
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		base:    base,
		current: base,
		logger:  logger.With("component", "messages"),
	}
}

// Message formats the template for code from the current catalog.
func (c *Catalog) Message(code edmErrors.ErrorCode, args ...any) string {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()
	return current.Message(code, args...)
}

// Swap replaces the overrides applied on top of the base catalog.
func (c *Catalog) Swap(overrides map[edmErrors.ErrorCode]string) {
	merged := c.base.Merge(overrides)

	c.mu.Lock()
	c.current = merged
	c.loadTime = time.Now()
	c.mu.Unlock()
}

// Load reads overrides from path and swaps them in. On failure the previous
// messages stay in effect.
func (c *Catalog) Load(path string) error {
	overrides, err := LoadFile(path)
	if err != nil {
		c.logger.Error("Failed to load message catalog, keeping previous messages",
			"path", path,
			"error", err,
		)
		return err
	}

	c.Swap(overrides)
	c.mu.Lock()
	c.path = path
	c.mu.Unlock()

	c.logger.Info("Message catalog loaded",
		"path", path,
		"overrides", len(overrides),
	)
	return nil
}

// Reload reloads the file last passed to Load.
func (c *Catalog) Reload() error {
	c.mu.RLock()
	path := c.path
	c.mu.RUnlock()
	if path == "" {
		return fmt.Errorf("no message catalog loaded")
	}
	return c.Load(path)
}

// LoadTime returns when the overrides were last swapped in.
func (c *Catalog) LoadTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadTime
}
