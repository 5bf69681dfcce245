package config

// Keyword source configuration types

type Source struct {
	Keyword   string         `yaml:"keyword"`
	Type      string         `yaml:"type"` // "search" or "rss"
	URL       string         `yaml:"url"`  // search URL template with %s placeholder, or feed URL
	Settings  SourceSettings `yaml:"settings"`
	Selectors Selectors      `yaml:"selectors"`
}

type SourceSettings struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"`
	Timeout int  `yaml:"timeout"` // seconds
}

// Selectors are the CSS selectors used to pick news entries out of a
// search result page. Only meaningful for type "search".
type Selectors struct {
	Item  string `yaml:"item"`
	Title string `yaml:"title"`
	Link  string `yaml:"link"`
}

const (
	SourceTypeSearch = "search"
	SourceTypeRSS    = "rss"
)
