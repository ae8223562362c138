// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aliases

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-verify/models"
	"github.com/danielhkuo/quickly-verify/names"
)

var (
	ErrEmptyVanID = errors.New("van_id is required")
	ErrEmptyAlias = errors.New("alias is required")
)

// Registry maps operator-declared alias strings to roster van IDs.
// Keys are normalized with names.Normalize, so "Bobby Q Wilson" and
// "bobby wilson" are the same alias. The last Add for a key wins.
//
// A Registry is not safe for concurrent mutation; pass snapshots to reconcile.
type Registry struct {
	byKey map[string]string
	list  []models.Alias
}

func New() *Registry {
	return &Registry{byKey: make(map[string]string)}
}

// FromAliases builds a registry from a stored alias list, in order.
// Entries with an empty van ID or alias are ignored.
func FromAliases(list []models.Alias) *Registry {
	r := New()
	for _, a := range list {
		_ = r.Add(a.VanID, a.Alias)
	}
	return r
}

// Add maps alias to vanID.
func (r *Registry) Add(vanID, alias string) error {
	vanID = strings.TrimSpace(vanID)
	alias = strings.TrimSpace(alias)
	if vanID == "" {
		return ErrEmptyVanID
	}
	key := names.Normalize(alias)
	if key == "" {
		return ErrEmptyAlias
	}

	r.byKey[key] = vanID
	r.list = append(r.list, models.Alias{VanID: vanID, Alias: alias})
	return nil
}

// Lookup returns the van ID for a ballot username or email.
func (r *Registry) Lookup(s string) (string, bool) {
	if r == nil {
		return "", false
	}
	key := names.Normalize(s)
	if key == "" {
		return "", false
	}
	vanID, ok := r.byKey[key]
	return vanID, ok
}

// Reset drops every alias.
func (r *Registry) Reset() {
	r.byKey = make(map[string]string)
	r.list = nil
}

// Aliases returns the aliases in the order they were added.
func (r *Registry) Aliases() []models.Alias {
	if r == nil {
		return nil
	}
	out := make([]models.Alias, len(r.list))
	copy(out, r.list)
	return out
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.list)
}

// aliasFile is the on-disk shape used by ReadYAML and WriteYAML.
type aliasFile struct {
	Aliases []models.Alias `yaml:"aliases"`
}

// ReadYAML loads an alias list written by WriteYAML.
func ReadYAML(r io.Reader) ([]models.Alias, error) {
	var file aliasFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode aliases: %w", err)
	}

	for i, a := range file.Aliases {
		if strings.TrimSpace(a.VanID) == "" {
			return nil, fmt.Errorf("alias %d: %w", i+1, ErrEmptyVanID)
		}
		if strings.TrimSpace(a.Alias) == "" {
			return nil, fmt.Errorf("alias %d: %w", i+1, ErrEmptyAlias)
		}
	}
	return file.Aliases, nil
}

// WriteYAML saves list so it can be restored in a later session.
func WriteYAML(w io.Writer, list []models.Alias) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(aliasFile{Aliases: list}); err != nil {
		return fmt.Errorf("encode aliases: %w", err)
	}
	return enc.Close()
}
