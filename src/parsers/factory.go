// backend/src/parsers/factory.go
package parsers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/username/tradejournal/backend/src/parsers/exness"
	"github.com/username/tradejournal/backend/src/parsers/generic"
	"github.com/username/tradejournal/backend/src/parsers/mapping"
	"github.com/username/tradejournal/backend/src/parsers/matchtrader"
	"github.com/username/tradejournal/backend/src/parsers/topstep"
	"github.com/username/tradejournal/backend/src/parsers/tradezella"
)

var (
	ErrUnknownSource   = errors.New("no parser available for source")
	ErrMappingRequired = errors.New("generic csv import requires a column mapping")
)

// SourceInfo describes one supported export format for clients building an import form.
type SourceInfo struct {
	Source          string              `json:"source"`
	DisplayName     string              `json:"display_name"`
	RequiredFields  []string            `json:"required_fields"`
	ExpectedColumns map[string][]string `json:"expected_columns"`
}

// Registry holds the vendor profiles, with any configured alias overrides applied.
type Registry struct {
	profiles map[string]mapping.Profile
	order    []string
}

func builtinProfiles() []mapping.Profile {
	return []mapping.Profile{
		matchtrader.Profile(),
		tradezella.Profile(),
		topstep.Profile(),
		exness.Profile(),
	}
}

func NewRegistry(overrides Overrides) (*Registry, error) {
	r := &Registry{profiles: make(map[string]mapping.Profile)}
	for _, p := range builtinProfiles() {
		if extra, ok := overrides[p.Source]; ok {
			p = p.WithAliases(extra)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		r.profiles[p.Source] = p
		r.order = append(r.order, p.Source)
	}
	for source := range overrides {
		if _, ok := r.profiles[source]; !ok {
			return nil, fmt.Errorf("%w: %s (alias override)", ErrUnknownSource, source)
		}
	}
	return r, nil
}

// GetParser returns the mapper for a vendor source name.
func (r *Registry) GetParser(source string) (Parser, error) {
	key := normalizeSource(source)
	if key == generic.Source {
		return nil, ErrMappingRequired
	}
	p, ok := r.profiles[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s, %s)", ErrUnknownSource, source, strings.Join(r.order, ", "), generic.Source)
	}
	return mapping.NewParser(p), nil
}

// GenericParser builds a mapper from a user's column mapping.
func (r *Registry) GenericParser(columns map[string]string, dateOrder string) (Parser, error) {
	if len(columns) == 0 {
		return nil, ErrMappingRequired
	}
	p, err := generic.NewParser(columns, dateOrder)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Registry) Sources() []SourceInfo {
	out := make([]SourceInfo, 0, len(r.order)+1)
	for _, source := range r.order {
		p := r.profiles[source]
		out = append(out, SourceInfo{
			Source:          p.Source,
			DisplayName:     p.DisplayName,
			RequiredFields:  requiredFieldNames(),
			ExpectedColumns: p.ExpectedColumns(),
		})
	}
	out = append(out, SourceInfo{
		Source:          generic.Source,
		DisplayName:     "Generic CSV",
		RequiredFields:  requiredFieldNames(),
		ExpectedColumns: map[string][]string{},
	})
	return out
}

func requiredFieldNames() []string {
	names := make([]string, 0, len(mapping.RequiredFields))
	for _, f := range mapping.RequiredFields {
		names = append(names, f.String())
	}
	return names
}

// normalizeSource accepts display spellings such as "Match Trader" or "match-trader".
func normalizeSource(source string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(source)))
}

var defaultRegistry = mustRegistry(NewRegistry(nil))

// mustRegistry panics at init when a built-in profile is invalid.
func mustRegistry(r *Registry, err error) *Registry {
	if err != nil {
		panic(fmt.Sprintf("parsers: invalid built-in vendor profiles: %v", err))
	}
	return r
}

// GetParser resolves a source against the built-in profiles without overrides.
func GetParser(source string) (Parser, error) {
	return defaultRegistry.GetParser(source)
}
