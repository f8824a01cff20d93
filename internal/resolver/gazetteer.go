package resolver

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/openeyemedia/climate-api/internal/model"

	_ "embed"
)

//go:embed gazetteer.yaml
var gazetteerYAML []byte

type gazetteerEntry struct {
	Name      string  `yaml:"name"`
	Country   string  `yaml:"country"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone"`
}

var (
	gazetteerOnce sync.Once
	gazetteer     map[string]gazetteerEntry
	gazetteerKeys []string // sorted, for deterministic iteration
)

func loadGazetteer() map[string]gazetteerEntry {
	gazetteerOnce.Do(func() {
		if err := yaml.Unmarshal(gazetteerYAML, &gazetteer); err != nil {
			// The table is embedded at build time; a parse failure is
			// a packaging bug, and resolution falls through to NotFound.
			zap.L().Error("resolver: parse embedded gazetteer", zap.Error(err))
			gazetteer = map[string]gazetteerEntry{}
		}
		gazetteerKeys = make([]string, 0, len(gazetteer))
		for k := range gazetteer {
			gazetteerKeys = append(gazetteerKeys, k)
		}
		sort.Strings(gazetteerKeys)
	})
	return gazetteer
}

var nonLetter = regexp.MustCompile(`[^a-z ]`)
var multiSpace = regexp.MustCompile(`\s+`)

// Normalize lowercases a place name, strips everything but letters and
// spaces, and collapses whitespace: "London, UK" -> "london uk".
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonLetter.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// lookupGazetteer matches a normalized query against the fallback table.
// Priority: exact key, then the query starting with or containing the key
// as a whole word, then the key as a plain substring. First hit wins.
func lookupGazetteer(normalized string) (model.Location, bool) {
	table := loadGazetteer()

	if e, ok := table[normalized]; ok {
		return gazetteerLocation(e), true
	}

	for _, key := range gazetteerKeys {
		if strings.HasPrefix(normalized, key+" ") ||
			strings.Contains(" "+normalized+" ", " "+key+" ") {
			return gazetteerLocation(table[key]), true
		}
	}

	for _, key := range gazetteerKeys {
		if strings.Contains(normalized, key) {
			return gazetteerLocation(table[key]), true
		}
	}

	return model.Location{}, false
}

func gazetteerLocation(e gazetteerEntry) model.Location {
	return model.Location{
		Name:      e.Name,
		Country:   e.Country,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Timezone:  e.Timezone,
	}
}
