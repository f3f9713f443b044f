package language

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/lexcrawl/lexcrawl"
)

// Service holds the target-language configuration loaded at startup.
// Loading happens once; the mapping is read-only afterwards, so lookups
// are safe from concurrent crawl drivers. A load failure is fatal to the
// enclosing process by design: downstream language decisions would be
// meaningless without it.
type Service struct {
	configs map[string]lexcrawl.LanguageConfig
}

// NewService loads the language mapping file (lowercase language key to
// LanguageConfig record).
func NewService(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINTERNAL, "read language config %s: %v", path, err)
	}

	var configs map[string]lexcrawl.LanguageConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "parse language config %s: %v", path, err)
	}
	if len(configs) == 0 {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "language config %s defines no languages", path)
	}
	for key, config := range configs {
		if err := config.Validate(); err != nil {
			return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "language %q: %s", key, lexcrawl.ErrorMessage(err))
		}
	}

	return &Service{configs: configs}, nil
}

// Config returns the configuration for a language key, case-insensitively.
// Unknown keys error with the list of available keys so a typo in a crawl
// invocation is immediately diagnosable.
func (s *Service) Config(key string) (lexcrawl.LanguageConfig, error) {
	config, ok := s.configs[strings.ToLower(key)]
	if !ok {
		return lexcrawl.LanguageConfig{}, lexcrawl.Errorf(lexcrawl.ENOTFOUND,
			"language %q not found, available: %s", key, strings.Join(s.Keys(), ", "))
	}
	return config, nil
}

// Keys returns the configured language keys in sorted order.
func (s *Service) Keys() []string {
	keys := make([]string, 0, len(s.configs))
	for key := range s.configs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
