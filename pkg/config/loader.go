package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/cellframe/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Fields whose zero value is
// meaningful are only taken when the key is present in raw.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.UI.TickInterval != 0 {
		base.UI.TickInterval = override.UI.TickInterval
	}
	if fieldSet(raw, "ui", "max_fps") {
		base.UI.MaxFPS = override.UI.MaxFPS
	}
	mergeString(&base.UI.Foreground, override.UI.Foreground)
	mergeString(&base.UI.Background, override.UI.Background)
	mergeString(&base.UI.SelectionColor, override.UI.SelectionColor)
	mergeString(&base.UI.HighlightColor, override.UI.HighlightColor)
	mergeString(&base.UI.BorderStyle, override.UI.BorderStyle)

	if fieldSet(raw, "logging", "dir") {
		base.Logging.Dir = strings.TrimSpace(override.Logging.Dir)
	}
	mergeString(&base.Logging.Level, override.Logging.Level)

	if fieldSet(raw, "metrics", "listen") {
		base.Metrics.Listen = strings.TrimSpace(override.Metrics.Listen)
	}
}

func mergeString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// fieldSet reports whether the nested key path exists in raw.
func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}
