package analysis

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alex28786/the-reef/internal/store"
	"gopkg.in/yaml.v3"
)

// Prompt catalog keys.
const (
	PromptBridgeFourHorsemen = "bridge_four_horsemen_v1"
	PromptBridgeNVC          = "bridge_nvc_transform_v1"
	PromptRetroClerk         = "retro_clerk_analysis_v1"
)

// ErrUnknownPrompt is returned when overriding a key the catalog does not serve.
var ErrUnknownPrompt = errors.New("unknown prompt key")

//go:embed prompts.yaml
var promptsYAML []byte

type promptFile struct {
	Prompts map[string]string `yaml:"prompts"`
}

// PromptCatalog serves analysis prompts: a database override when one exists,
// the embedded default otherwise.
type PromptCatalog struct {
	defaults  map[string]string
	overrides store.SystemPromptStore
}

// NewPromptCatalog parses the embedded defaults. overrides may be nil.
func NewPromptCatalog(overrides store.SystemPromptStore) (*PromptCatalog, error) {
	defaults, err := parsePrompts(promptsYAML)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{PromptBridgeFourHorsemen, PromptBridgeNVC, PromptRetroClerk} {
		if defaults[key] == "" {
			return nil, fmt.Errorf("prompt catalog is missing %s", key)
		}
	}
	return &PromptCatalog{defaults: defaults, overrides: overrides}, nil
}

func parsePrompts(data []byte) (map[string]string, error) {
	var file promptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing prompt catalog: %w", err)
	}
	return file.Prompts, nil
}

// Get returns the prompt text for key and the version label recorded with evals.
// Override lookup failures fall back to the default; prompts are never fatal.
func (c *PromptCatalog) Get(ctx context.Context, key string) (text, version string) {
	if c.overrides != nil {
		override, err := c.overrides.Get(ctx, key)
		switch {
		case err == nil && override != nil && override.Text != "":
			return override.Text, key + "+override"
		case err != nil && !errors.Is(err, store.ErrNotFound):
			slog.WarnContext(ctx, "prompt override lookup failed, using default",
				"key", key,
				"error", err)
		}
	}
	return c.defaults[key], key
}

// Bridge returns both Bridge prompts and their combined version label.
func (c *PromptCatalog) Bridge(ctx context.Context) (BridgePrompts, string) {
	horsemen, hv := c.Get(ctx, PromptBridgeFourHorsemen)
	nvc, nv := c.Get(ctx, PromptBridgeNVC)
	return BridgePrompts{FourHorsemen: horsemen, NVC: nvc}, hv + "," + nv
}

// Retro returns the retro clerk prompt and its version label.
func (c *PromptCatalog) Retro(ctx context.Context) (string, string) {
	return c.Get(ctx, PromptRetroClerk)
}

// PromptEntry is the effective text of one catalog key.
type PromptEntry struct {
	Key        string
	Text       string
	Overridden bool
	UpdatedAt  *time.Time
}

// Entries lists every catalog key with the text analysis currently uses.
func (c *PromptCatalog) Entries(ctx context.Context) ([]PromptEntry, error) {
	stored := map[string]PromptEntry{}
	if c.overrides != nil {
		rows, err := c.overrides.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing prompt overrides: %w", err)
		}
		for _, row := range rows {
			if _, known := c.defaults[row.Key]; !known || row.Text == "" {
				continue
			}
			updated := row.UpdatedAt
			stored[row.Key] = PromptEntry{Key: row.Key, Text: row.Text, Overridden: true, UpdatedAt: &updated}
		}
	}

	keys := make([]string, 0, len(c.defaults))
	for key := range c.defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]PromptEntry, 0, len(keys))
	for _, key := range keys {
		if entry, ok := stored[key]; ok {
			entries = append(entries, entry)
			continue
		}
		entries = append(entries, PromptEntry{Key: key, Text: c.defaults[key]})
	}
	return entries, nil
}

// Override stores replacement text for a catalog key. Later analyses pick it up
// and record the "+override" version label.
func (c *PromptCatalog) Override(ctx context.Context, key, text string) (*PromptEntry, error) {
	if _, known := c.defaults[key]; !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrompt, key)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: prompt text is empty", ErrInvalidText)
	}
	if c.overrides == nil {
		return nil, fmt.Errorf("%w: no prompt override store", ErrNotConfigured)
	}

	row, err := c.overrides.Upsert(ctx, key, text)
	if err != nil {
		return nil, fmt.Errorf("storing prompt override: %w", err)
	}
	slog.InfoContext(ctx, "prompt override stored", "key", key)

	updated := row.UpdatedAt
	return &PromptEntry{Key: row.Key, Text: row.Text, Overridden: true, UpdatedAt: &updated}, nil
}
