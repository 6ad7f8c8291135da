// Package localization renders display strings for the label keys the core
// hands out (status labels, case types, roles). Translations are loaded from
// JSON files named by language code; English is the fallback.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const fallbackLang = "en"

// Provider holds the loaded translations, one key/value map per language.
type Provider struct {
	labels map[string]map[string]string
	mu     sync.RWMutex
}

// NewProvider loads every <lang>.json file in dir. The core only ever
// supplies keys; the rendered text always comes from here.
func NewProvider(dir string) (*Provider, error) {
	p := &Provider{labels: make(map[string]map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}
		var labels map[string]string
		if err := json.Unmarshal(data, &labels); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", entry.Name(), err)
		}
		p.labels[strings.TrimSuffix(entry.Name(), ".json")] = labels
	}

	if _, ok := p.labels[fallbackLang]; !ok {
		return nil, fmt.Errorf("locales directory %s has no %s.json", dir, fallbackLang)
	}
	return p, nil
}

// Label returns the display string for key in lang, falling back first to
// English and finally to the key itself, so an unmapped key never renders
// empty.
func (p *Provider) Label(lang, key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if labels, ok := p.labels[lang]; ok {
		if value, ok := labels[key]; ok {
			return value
		}
	}
	if lang != fallbackLang {
		if value, ok := p.labels[fallbackLang][key]; ok {
			return value
		}
	}
	return key
}

// Languages lists the loaded language codes.
func (p *Provider) Languages() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	langs := make([]string, 0, len(p.labels))
	for lang := range p.labels {
		langs = append(langs, lang)
	}
	return langs
}
