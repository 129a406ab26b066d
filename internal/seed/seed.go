package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/jacobe603/quote-builder/internal/config"
	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/jacobe603/quote-builder/internal/quote/tree"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:embed fixture.yaml
var defaultFixture []byte

var ErrInvalidFixture = errors.New("invalid_fixture")

var Module = fx.Module("seed",
	fx.Provide(Load),
)

type fixture struct {
	Project        quotedomain.ProjectInfo `mapstructure:"projectInfo"`
	Suppliers      []quotedomain.Reference `mapstructure:"suppliers"`
	Manufacturers  []quotedomain.Reference `mapstructure:"manufacturers"`
	EquipmentTypes []quotedomain.Reference `mapstructure:"equipmentTypes"`
	Packages       []quotedomain.Package   `mapstructure:"packages"`
	Groups         []quotedomain.Group     `mapstructure:"groups"`
	LineItems      []quotedomain.LineItem  `mapstructure:"lineItems"`
}

// Load builds the initial quote snapshot from the configured fixture file,
// or from the embedded sample when none is set, laid out in the configured
// hierarchy variant.
func Load(cfg config.Config, log *zap.Logger) (*quotedomain.Snapshot, error) {
	variant, err := quotedomain.ParseVariant(cfg.Hierarchy)
	if err != nil {
		return nil, fmt.Errorf("QUOTE_HIERARCHY %q: %w", cfg.Hierarchy, err)
	}

	v := viper.New()
	source := "embedded"
	if cfg.FixturePath != "" {
		source = cfg.FixturePath
		v.SetConfigFile(cfg.FixturePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", cfg.FixturePath, err)
		}
	} else {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(defaultFixture)); err != nil {
			return nil, err
		}
	}

	snap, err := decode(v)
	if err != nil {
		return nil, err
	}
	if variant == quotedomain.VariantPackage {
		snap = flatten(snap)
	}

	log.Named("seed").Info("quote fixture loaded",
		zap.String("source", source),
		zap.String("variant", string(snap.Variant)),
		zap.Int("packages", len(snap.Packages)),
		zap.Int("groups", len(snap.Groups)),
		zap.Int("line_items", len(snap.LineItems)),
	)
	return snap, nil
}

// decode reads a fixture in the grouped layout. A line item may omit its
// package id; it is taken from the item's group.
func decode(v *viper.Viper) (*quotedomain.Snapshot, error) {
	var f fixture
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	snap := &quotedomain.Snapshot{
		Version:        1,
		Variant:        quotedomain.VariantGrouped,
		Project:        f.Project,
		Suppliers:      f.Suppliers,
		Manufacturers:  f.Manufacturers,
		EquipmentTypes: f.EquipmentTypes,
		Packages:       f.Packages,
		Groups:         f.Groups,
		LineItems:      f.LineItems,
	}

	groupPackage := make(map[string]string, len(snap.Groups))
	for _, g := range snap.Groups {
		groupPackage[g.ID] = g.PackageID
	}
	for i := range snap.LineItems {
		li := &snap.LineItems[i]
		if li.PackageID == "" {
			li.PackageID = groupPackage[li.GroupID]
		}
	}

	if err := validate(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func validate(s *quotedomain.Snapshot) error {
	ids := make(map[string]struct{})
	unique := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%w: %s without id", ErrInvalidFixture, kind)
		}
		if _, dup := ids[id]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidFixture, id)
		}
		ids[id] = struct{}{}
		return nil
	}

	idx := tree.NewIndex(s)
	for _, p := range s.Packages {
		if err := unique("package", p.ID); err != nil {
			return err
		}
	}
	for _, g := range s.Groups {
		if err := unique("group", g.ID); err != nil {
			return err
		}
		if _, ok := idx.Package(g.PackageID); !ok {
			return fmt.Errorf("%w: group %s references unknown package %s", ErrInvalidFixture, g.ID, g.PackageID)
		}
	}
	for _, li := range s.LineItems {
		if err := unique("line item", li.ID); err != nil {
			return err
		}
		g, ok := idx.Group(li.GroupID)
		if !ok || g.PackageID != li.PackageID {
			return fmt.Errorf("%w: line item %s references unknown group %s", ErrInvalidFixture, li.ID, li.GroupID)
		}
		if li.IsPrimary() {
			continue
		}
		parent, ok := idx.Item(li.ParentID)
		if !ok || !parent.IsPrimary() || parent.GroupID != li.GroupID {
			return fmt.Errorf("%w: line item %s has invalid parent %s", ErrInvalidFixture, li.ID, li.ParentID)
		}
	}
	return nil
}

// flatten converts a grouped snapshot to the two-level layout. Primaries are
// renumbered in their displayed order so every address is preserved.
func flatten(s *quotedomain.Snapshot) *quotedomain.Snapshot {
	idx := tree.NewIndex(s)
	out := s.Clone()
	out.Variant = quotedomain.VariantPackage
	out.Groups = nil

	for _, pkgID := range idx.Packages() {
		for rank, id := range idx.Primaries(pkgID) {
			i := slices.IndexFunc(out.LineItems, func(li quotedomain.LineItem) bool { return li.ID == id })
			out.LineItems[i].SortOrder = rank + 1
		}
	}
	for i := range out.LineItems {
		out.LineItems[i].GroupID = ""
	}
	return out
}
