package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTeamColors reads a team -> color mapping. Files ending in .yaml or .yml
// are parsed as YAML, anything else as JSON.
func LoadTeamColors(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading team colors: %w", err)
	}

	colors := map[string]string{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &colors)
	default:
		err = json.Unmarshal(data, &colors)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing team colors %s: %w", path, err)
	}
	return colors, nil
}

// TeamColors merges the inline map with TeamColorsFile, file entries winning.
// On a file error the inline map is still returned.
func (c *Config) TeamColors() (map[string]string, error) {
	merged := make(map[string]string, len(c.TeamColorMap))
	for team, color := range c.TeamColorMap {
		merged[team] = color
	}
	if c.TeamColorsFile == "" {
		return merged, nil
	}

	path := c.TeamColorsFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(ConfigDir(), path)
	}
	fromFile, err := LoadTeamColors(path)
	if err != nil {
		return merged, err
	}
	for team, color := range fromFile {
		merged[team] = color
	}
	return merged, nil
}
