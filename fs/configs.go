package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lexcrawl/lexcrawl"
)

// ReadSiteConfigs reads a JSON array of site configs.
func ReadSiteConfigs(path string) ([]lexcrawl.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot read config file: %v", err)
	}

	var configs []lexcrawl.SiteConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "malformed config file %s: %v", path, err)
	}
	return configs, nil
}

// WriteSiteConfigs writes site configs as an indented JSON array, creating
// parent directories as needed. Error records are written alongside
// successful configs so a run's failures stay visible.
func WriteSiteConfigs(path string, configs []lexcrawl.SiteConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot create config dir: %v", err)
	}

	data, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot encode configs: %v", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot write config file: %v", err)
	}
	return nil
}
