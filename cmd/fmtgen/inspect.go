// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fmtgen/fmtgen/internal/classify"
	"github.com/fmtgen/fmtgen/internal/compiler"
	"github.com/fmtgen/fmtgen/internal/config"
	"github.com/fmtgen/fmtgen/pkg/format"
)

// compileForInspection builds the descriptor table of args without
// publishing anything. Errors are already reported when it returns one.
func compileForInspection(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, enumPath string, args []string) (*compiler.Result, *config.Config, error) {
	cfg, logger, err := app.setup(cmd, rootFlags)
	if err != nil {
		return nil, nil, err
	}

	c := compiler.New(compiler.Options{Emit: cfg.EmitOptions(), Logger: logger})
	res, err := c.Compile(cmd.Context(), compiler.Request{Catalogs: args, EnumPath: enumPath})
	if err != nil {
		err = actionable(err, "compile format catalog", strings.Join(args, ", "))
		return nil, nil, reportError(cmd, app.stderr, err, rootFlags.verbose)
	}
	return res, cfg, nil
}

// classFlags lists the classification predicates that hold, in a fixed order.
func classFlags(c classify.Classification) []string {
	var flags []string
	add := func(ok bool, name string) {
		if ok {
			flags = append(flags, name)
		}
	}
	add(c.IsArray, "array")
	add(c.IsBitmask, "bitmask")
	add(c.IsMixed, "mixed")
	add(c.IsCompressed, "compressed")
	add(c.IsUnorm, "unorm")
	add(c.IsSnorm, "snorm")
	add(c.IsPureUnsigned, "pure-uint")
	add(c.IsPureSigned, "pure-sint")
	add(c.HasDepth, "depth")
	add(c.HasStencil, "stencil")
	return flags
}

// blockString renders block geometry as WxHxD/bits.
func blockString(b format.Block) string {
	return fmt.Sprintf("%dx%dx%d/%d", b.Width, b.Height, b.Depth, b.Bits)
}

// swizzleString renders four swizzles as a compact string such as "XYZW".
func swizzleString(swizzles [4]format.Swizzle) string {
	var sb strings.Builder
	for _, s := range swizzles {
		sb.WriteString(s.String())
	}
	return sb.String()
}
