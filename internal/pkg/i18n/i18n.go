package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const DefaultLocale = "en"

//go:embed locales/*/stopwords.yaml
var localeFS embed.FS

type WordSet map[string]struct{}

var (
	stopwords = make(map[string]WordSet)
	loadOnce  sync.Once
	loadErr   error
)

// LoadStopwords parses every locales/<locale>/stopwords.yaml in fsys.
func LoadStopwords(fsys fs.FS) (map[string]WordSet, error) {
	entries, err := fs.ReadDir(fsys, "locales")
	if err != nil {
		return nil, err
	}

	result := make(map[string]WordSet)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := path.Join("locales", locale, "stopwords.yaml")

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var config struct {
			Stopwords []string `yaml:"STOPWORDS"`
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		set := make(WordSet, len(config.Stopwords))
		for _, w := range config.Stopwords {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				set[w] = struct{}{}
			}
		}
		result[locale] = set
	}

	return result, nil
}

// Stopwords returns the stopword set for locale, falling back to English.
func Stopwords(locale string) WordSet {
	loadOnce.Do(func() {
		stopwords, loadErr = LoadStopwords(localeFS)
		if loadErr != nil {
			log.Printf("[i18n] failed to load stopwords: %v", loadErr)
		}
	})

	if set, ok := stopwords[locale]; ok {
		return set
	}
	if set, ok := stopwords[DefaultLocale]; ok {
		return set
	}
	return WordSet{}
}

func (s WordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}
