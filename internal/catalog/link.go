// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"strings"

	"github.com/fmtgen/fmtgen/pkg/format"
)

// linkEquivalents pairs every SRGB format with its linear sibling. The
// sibling is either named explicitly (LinearEquivalent already set by the
// entry) or derived by replacing _SRGB with _UNORM when such a format exists.
func linkEquivalents(descs []*format.Descriptor, byName map[string]*format.Descriptor) error {
	claimed := make(map[string]string)

	for _, d := range descs {
		if d.Colorspace != format.ColorspaceSRGB {
			if d.LinearEquivalent != "" {
				return invalidf(d.Source, d.Name, "linear_equivalent is only allowed on SRGB formats")
			}
			continue
		}

		explicit := d.LinearEquivalent != ""
		target := d.LinearEquivalent
		if !explicit {
			target = strings.Replace(d.Name, "_SRGB", "_UNORM", 1)
			if target == d.Name {
				continue
			}
		}

		linear, ok := byName[target]
		if !ok {
			if explicit {
				return &CatalogError{
					Source: d.Source,
					Format: d.Name,
					Err:    fmt.Errorf("%w: linear equivalent %s is not defined", ErrUnknownFormat, target),
				}
			}
			continue
		}
		if linear.Colorspace == format.ColorspaceSRGB {
			return invalidf(d.Source, d.Name, "linear equivalent %s is itself an SRGB format", target)
		}
		if prev, dup := claimed[target]; dup {
			return invalidf(d.Source, d.Name, "linear format %s is already linked to %s", target, prev)
		}
		claimed[target] = d.Name

		d.LinearEquivalent = linear.Name
		linear.SRGBEquivalent = d.Name
	}
	return nil
}

// checkAliases validates the byte-order alias names: unique per byte order
// and never shadowing a canonical name.
func checkAliases(descs []*format.Descriptor, byName map[string]*format.Descriptor) error {
	le := make(map[string]string)
	be := make(map[string]string)

	check := func(d *format.Descriptor, alias string, seen map[string]string, order string) error {
		if alias == "" {
			return nil
		}
		if _, ok := byName[alias]; ok {
			return invalidf(d.Source, d.Name, "%s alias %s collides with a format name", order, alias)
		}
		if prev, ok := seen[alias]; ok {
			return invalidf(d.Source, d.Name, "%s alias %s is already used by %s", order, alias, prev)
		}
		seen[alias] = d.Name
		return nil
	}

	for _, d := range descs {
		if err := check(d, d.LEAlias, le, "little-endian"); err != nil {
			return err
		}
		if err := check(d, d.BEAlias, be, "big-endian"); err != nil {
			return err
		}
	}
	return nil
}
