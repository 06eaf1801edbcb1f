// Package registry loads per-institution parsing patterns from CSV files in
// a configuration directory and serves them to concurrent parse invocations.
// The most recently modified CSV file in the directory is authoritative.
//
// Reload builds a complete replacement mapping and swaps it in atomically,
// so readers always observe either the old or the new table in full.
package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gocarina/gocsv"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/parsererror"
)

// patternRow mirrors one row of a registry CSV file. DATE_PATTERN is a
// literal of the shape [3, "2 Jan 06"]; PAID_IN and PAID_OUT are keyword
// list literals like ['CR', 'PAYMENT'].
type patternRow struct {
	Bank        string `csv:"BANK"`
	DatePattern string `csv:"DATE_PATTERN"`
	PaidIn      string `csv:"PAID_IN"`
	PaidOut     string `csv:"PAID_OUT"`
}

// Registry is the shared, hot-reloadable pattern table.
type Registry struct {
	dir      string
	logger   logging.Logger
	patterns atomic.Pointer[map[string]models.ParsingPattern]
}

// New creates a Registry over the given configuration directory and performs
// the initial load. A missing directory yields an empty registry, not an
// error.
func New(dir string, logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.GetLogger()
	}
	r := &Registry{dir: dir, logger: logger}
	empty := map[string]models.ParsingPattern{}
	r.patterns.Store(&empty)
	if err := r.Load(); err != nil {
		logger.WithError(err).Warn("Initial pattern registry load failed, starting empty",
			logging.Field{Key: logging.FieldFile, Value: dir})
	}
	return r
}

// Load scans the configuration directory for the newest CSV file and
// replaces the in-memory table with its contents. Malformed rows are logged
// and skipped; they never abort the load.
func (r *Registry) Load() error {
	path, ok, err := r.latestFile()
	if err != nil {
		return &parsererror.RegistryError{Path: r.dir, Err: err}
	}
	if !ok {
		empty := map[string]models.ParsingPattern{}
		r.patterns.Store(&empty)
		r.logger.Info("No pattern registry files found, registry is empty",
			logging.Field{Key: logging.FieldFile, Value: r.dir})
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &parsererror.RegistryError{Path: path, Err: err}
	}

	var rows []*patternRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return &parsererror.RegistryError{Path: path, Err: err}
	}

	table := make(map[string]models.ParsingPattern, len(rows))
	for _, row := range rows {
		bank := strings.TrimSpace(row.Bank)
		if bank == "" {
			continue
		}
		pattern := models.ParsingPattern{
			PaidIn:  parseKeywordList(row.PaidIn),
			PaidOut: parseKeywordList(row.PaidOut),
		}
		if components, layout, ok := parseDatePattern(row.DatePattern); ok {
			pattern.DateComponents = components
			pattern.DateLayout = layout
		} else if strings.TrimSpace(row.DatePattern) != "" {
			r.logger.Warn("Skipping malformed date pattern, keywords kept",
				logging.Field{Key: logging.FieldInstitution, Value: bank},
				logging.Field{Key: logging.FieldRow, Value: row.DatePattern})
		}
		table[bank] = pattern
	}

	r.patterns.Store(&table)
	r.logger.Info("Loaded pattern registry",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(table)})
	return nil
}

// Reload re-reads the directory and atomically replaces the table.
func (r *Registry) Reload() error {
	return r.Load()
}

// Get returns the pattern for an account key. The second return value is
// false when no pattern is registered; a miss is never an error.
func (r *Registry) Get(key string) (models.ParsingPattern, bool) {
	table := *r.patterns.Load()
	pattern, ok := table[key]
	return pattern, ok
}

// Resolve returns the registered pattern for key, filling any missing field
// from the hardcoded default table. Fields are defaulted individually, so a
// row that only carries keywords still receives the default date layout.
func (r *Registry) Resolve(key string) (models.ParsingPattern, bool) {
	pattern, registered := r.Get(key)
	institution, accountType := models.SplitAccountKey(key)
	fallback, hasDefault := DefaultPattern(institution, accountType)
	if !registered && !hasDefault {
		return pattern, false
	}
	if !pattern.HasDateLayout() {
		pattern.DateComponents = fallback.DateComponents
		pattern.DateLayout = fallback.DateLayout
	}
	if len(pattern.PaidIn) == 0 {
		pattern.PaidIn = fallback.PaidIn
	}
	if len(pattern.PaidOut) == 0 {
		pattern.PaidOut = fallback.PaidOut
	}
	return pattern, pattern.HasDateLayout()
}

// Keys returns the registered account keys in sorted order.
func (r *Registry) Keys() []string {
	table := *r.patterns.Load()
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// latestFile returns the most recently modified CSV file in the directory.
func (r *Registry) latestFile() (string, bool, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	var latest string
	var latestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = filepath.Join(r.dir, entry.Name())
			latestMod = info.ModTime().UnixNano()
		}
	}
	return latest, latest != "", nil
}

// parseDatePattern parses a literal like [3, "2 Jan 06"] into its component
// count and layout. ok is false for empty or malformed literals.
func parseDatePattern(literal string) (components int, layout string, ok bool) {
	literal = strings.TrimSpace(literal)
	if !strings.HasPrefix(literal, "[") || !strings.HasSuffix(literal, "]") {
		return 0, "", false
	}
	inner := strings.TrimSpace(literal[1 : len(literal)-1])
	parts := strings.SplitN(inner, ",", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	components, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || components < 2 || components > 3 {
		return 0, "", false
	}
	layout = trimQuotes(strings.TrimSpace(parts[1]))
	if layout == "" {
		return 0, "", false
	}
	return components, layout, true
}

// parseKeywordList parses a literal like ['CR', 'PAYMENT'] into a slice.
// Empty and malformed literals yield an empty slice.
func parseKeywordList(literal string) []string {
	literal = strings.TrimSpace(literal)
	if !strings.HasPrefix(literal, "[") || !strings.HasSuffix(literal, "]") {
		return nil
	}
	inner := strings.TrimSpace(literal[1 : len(literal)-1])
	if inner == "" {
		return nil
	}
	var keywords []string
	for _, part := range strings.Split(inner, ",") {
		kw := trimQuotes(strings.TrimSpace(part))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func trimQuotes(s string) string {
	s = strings.Trim(s, `'`)
	return strings.Trim(s, `"`)
}
