package config

import (
	"strings"
	"time"
)

// Defaults are the values of the "defaults" section of the config file.
// Pointer fields distinguish "not set" from zero values.
type Defaults struct {
	RankDepth   *int           `yaml:"rankDepth,omitempty"`
	Concurrency *int           `yaml:"concurrency,omitempty"`
	Proxy       *string        `yaml:"proxy,omitempty"`
	Timeout     *time.Duration `yaml:"timeout,omitempty"`
	Strict      *bool          `yaml:"strict,omitempty"`
	Top         *int           `yaml:"top,omitempty"`
	History     *bool          `yaml:"history,omitempty"`
}

// File represents the structure of the .xorcrack configuration file.
type File struct {
	// Defaults apply to every run unless the flag is given explicitly.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Aliases name lists of locations. A location written as "@name"
	// expands to the list stored under name.
	Aliases map[string][]string `yaml:"aliases,omitempty"`
}

// Names passed to the isSet callback of Apply. They match the CLI flag names.
const (
	KeyRankDepth   = "rank-depth"
	KeyConcurrency = "concurrency"
	KeyProxy       = "proxy"
	KeyTimeout     = "timeout"
	KeyStrict      = "strict"
	KeyTop         = "top"
	KeyNoHistory   = "no-history"
)

// Apply copies file defaults into cfg for every option that isSet reports
// as not given on the command line. A nil isSet treats all options as unset.
func (cf *File) Apply(cfg *Config, isSet func(name string) bool) {
	if isSet == nil {
		isSet = func(string) bool { return false }
	}

	d := cf.Defaults
	if d.RankDepth != nil && !isSet(KeyRankDepth) {
		cfg.RankDepth = *d.RankDepth
	}
	if d.Concurrency != nil && !isSet(KeyConcurrency) {
		cfg.Concurrency = *d.Concurrency
	}
	if d.Proxy != nil && !isSet(KeyProxy) {
		cfg.ProxyAddress = *d.Proxy
	}
	if d.Timeout != nil && !isSet(KeyTimeout) {
		cfg.FetchTimeout = *d.Timeout
	}
	if d.Strict != nil && !isSet(KeyStrict) {
		cfg.Strict = *d.Strict
	}
	if d.Top != nil && !isSet(KeyTop) {
		cfg.Top = *d.Top
	}
	if d.History != nil && !isSet(KeyNoHistory) {
		cfg.SaveToDB = *d.History
	}
}

// ExpandAliases replaces every "@name" location that names an alias with
// the alias' locations. Unknown aliases are kept as written.
func (cf *File) ExpandAliases(locations []string) []string {
	expanded := make([]string, 0, len(locations))
	for _, loc := range locations {
		name, ok := strings.CutPrefix(loc, "@")
		if !ok {
			expanded = append(expanded, loc)
			continue
		}
		if alias, found := cf.Aliases[name]; found {
			expanded = append(expanded, alias...)
			continue
		}
		expanded = append(expanded, loc)
	}
	return expanded
}
