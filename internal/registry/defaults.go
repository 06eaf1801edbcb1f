package registry

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"fjacquet/statement-parser/internal/models"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultEntry struct {
	Components int      `yaml:"components"`
	Layout     string   `yaml:"layout"`
	PaidIn     []string `yaml:"paid_in"`
	PaidOut    []string `yaml:"paid_out"`
}

var (
	defaultsOnce  sync.Once
	defaultsTable map[string]map[string]defaultEntry
)

func loadDefaults() {
	defaultsOnce.Do(func() {
		if err := yaml.Unmarshal(defaultsYAML, &defaultsTable); err != nil {
			// The seed table is embedded at build time; failing to parse it
			// is a programming error, not a runtime condition.
			panic("registry: malformed embedded defaults: " + err.Error())
		}
	})
}

// DefaultPattern returns the hardcoded seed pattern for an institution and
// account type ("HSBC", "credit_card"). ok is false when no seed exists.
func DefaultPattern(institution, accountType string) (models.ParsingPattern, bool) {
	loadDefaults()
	for name, accounts := range defaultsTable {
		if !strings.EqualFold(name, institution) {
			continue
		}
		entry, ok := accounts[strings.ToLower(accountType)]
		if !ok {
			return models.ParsingPattern{}, false
		}
		return models.ParsingPattern{
			DateComponents: entry.Components,
			DateLayout:     entry.Layout,
			PaidIn:         entry.PaidIn,
			PaidOut:        entry.PaidOut,
		}, true
	}
	return models.ParsingPattern{}, false
}
