package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads keyword source configurations from a directory of YAML
// files. Files are loaded in file name order; that order fixes the
// section order of every composed digest.
type Loader struct {
	sourcesDir string
	sources    []*Source
}

func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

func (l *Loader) Run() error {
	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return fmt.Errorf("sources directory %s does not exist", l.sourcesDir)
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	yamlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to find YAML files: %w", err)
	}
	files = append(files, yamlFiles...)
	sort.Strings(files)

	seen := make(map[string]string, len(files))
	for _, file := range files {
		source, err := l.parseFile(file)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(source); err != nil {
			return fmt.Errorf("invalid config %s: %w", file, err)
		}

		if prev, ok := seen[source.Keyword]; ok {
			return fmt.Errorf("keyword %q in %s already configured in %s", source.Keyword, file, prev)
		}
		seen[source.Keyword] = file

		l.sources = append(l.sources, source)
		slog.Debug("Source configuration loaded", "keyword", source.Keyword, "type", source.Type, "enabled", source.Settings.Enabled)
	}

	return nil
}

// Sources returns the enabled source configurations in declaration order.
func (l *Loader) Sources() []*Source {
	enabled := make([]*Source, 0, len(l.sources))
	for _, s := range l.sources {
		if s.Settings.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// Keywords returns the enabled keywords in declaration order.
func (l *Loader) Keywords() []string {
	sources := l.Sources()
	keywords := make([]string, 0, len(sources))
	for _, s := range sources {
		keywords = append(keywords, s.Keyword)
	}
	return keywords
}

// HasKeyword reports whether the keyword is configured and enabled.
// Keyword matching is case-sensitive.
func (l *Loader) HasKeyword(keyword string) bool {
	for _, s := range l.Sources() {
		if s.Keyword == keyword {
			return true
		}
	}
	return false
}

func (l *Loader) SourceCount() int {
	return len(l.Sources())
}

func (l *Loader) parseFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var source Source
	if err := yaml.Unmarshal(data, &source); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&source)

	return &source, nil
}

func (l *Loader) setDefaults(source *Source) {
	if source.Type == "" {
		source.Type = SourceTypeSearch
	}
	if source.Settings.Limit == 0 {
		source.Settings.Limit = 5
	}
	if source.Settings.Timeout == 0 {
		source.Settings.Timeout = 15 // seconds
	}
}

func (l *Loader) validate(source *Source) error {
	if source.Keyword == "" {
		return fmt.Errorf("keyword is required")
	}
	if source.URL == "" {
		return fmt.Errorf("source URL is required")
	}

	switch source.Type {
	case SourceTypeSearch:
		if !strings.Contains(source.URL, "%s") {
			return fmt.Errorf("search URL must contain a %%s keyword placeholder")
		}
	case SourceTypeRSS:
	default:
		return fmt.Errorf("invalid source type: %s", source.Type)
	}

	if source.Settings.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if source.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}
