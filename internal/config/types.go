// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/fmtgen/fmtgen/internal/access"
	"github.com/fmtgen/fmtgen/internal/emit"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultDebounceMS is the default quiet period of watch mode.
	DefaultDebounceMS = 300
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCIdentifier is returned when a prefix or name is not a C identifier.
	ErrInvalidCIdentifier = errors.New("invalid C identifier")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	cIdentifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// CIdentifier is a C identifier or identifier prefix.
	CIdentifier string

	// InvalidCIdentifierError is returned when a CIdentifier is malformed.
	InvalidCIdentifierError struct {
		Field string
		Value CIdentifier
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Identifier configures the enum constants of the generated sources.
		Identifier IdentifierConfig `json:"identifier" mapstructure:"identifier"`
		// Symbol configures the names of tables, getters and routines.
		Symbol SymbolConfig `json:"symbol" mapstructure:"symbol"`
		// Includes are the include lines of the table source.
		Includes []string `json:"includes" mapstructure:"includes"`
		// HeaderIncludes are the include lines of the declaration header.
		HeaderIncludes []string `json:"header_includes" mapstructure:"header_includes"`
		// Copyright is printed after the generated-file banner.
		Copyright string `json:"copyright" mapstructure:"copyright"`
		// Output holds the file names used by generate --all.
		Output OutputConfig `json:"output" mapstructure:"output"`
		// Watch configures watch mode.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// IdentifierConfig configures format identifiers.
	IdentifierConfig struct {
		Prefix   CIdentifier `json:"prefix" mapstructure:"prefix"`
		Count    CIdentifier `json:"count" mapstructure:"count"`
		EnumType string      `json:"enum_type" mapstructure:"enum_type"`
	}

	// SymbolConfig configures generated C symbols.
	SymbolConfig struct {
		Prefix CIdentifier `json:"prefix" mapstructure:"prefix"`
	}

	// OutputConfig names the three artifacts.
	OutputConfig struct {
		Table   string `json:"table" mapstructure:"table"`
		Header  string `json:"header" mapstructure:"header"`
		Aliases string `json:"aliases" mapstructure:"aliases"`
	}

	// WatchConfig configures watch mode.
	WatchConfig struct {
		DebounceMS int `json:"debounce_ms" mapstructure:"debounce_ms"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration, which reproduces the
// Mesa gallium naming.
func DefaultConfig() *Config {
	return &Config{
		Identifier: IdentifierConfig{
			Prefix:   emit.DefaultIdentifierPrefix,
			Count:    emit.DefaultCountName,
			EnumType: emit.DefaultEnumType,
		},
		Symbol:         SymbolConfig{Prefix: access.DefaultSymbolPrefix},
		Includes:       append([]string(nil), emit.DefaultIncludes...),
		HeaderIncludes: append([]string(nil), emit.DefaultHeaderIncludes...),
		Output: OutputConfig{
			Table:   "u_format_table.c",
			Header:  "u_format_pack.h",
			Aliases: "u_format_gen.h",
		},
		Watch: WatchConfig{DebounceMS: DefaultDebounceMS},
		UI:    UIConfig{ColorScheme: ColorSchemeAuto},
	}
}

// EmitOptions maps the configuration onto C backend options.
func (c *Config) EmitOptions() emit.Options {
	return emit.Options{
		IdentifierPrefix: string(c.Identifier.Prefix),
		CountName:        string(c.Identifier.Count),
		EnumType:         c.Identifier.EnumType,
		SymbolPrefix:     string(c.Symbol.Prefix),
		Includes:         c.Includes,
		HeaderIncludes:   c.HeaderIncludes,
		Copyright:        c.Copyright,
	}
}

// Debounce returns the watch quiet period.
func (c WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// IsValid reports whether every field holds a usable value.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	ids := []struct {
		field string
		value CIdentifier
	}{
		{"identifier.prefix", c.Identifier.Prefix},
		{"identifier.count", c.Identifier.Count},
		{"symbol.prefix", c.Symbol.Prefix},
	}
	for _, id := range ids {
		if ok, fieldErrs := id.value.validate(id.field); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if c.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the string representation of the CIdentifier.
func (id CIdentifier) String() string { return string(id) }

// IsValid reports whether the value is a C identifier.
func (id CIdentifier) IsValid() (bool, []error) { return id.validate("") }

func (id CIdentifier) validate(field string) (bool, []error) {
	if !cIdentifierPattern.MatchString(string(id)) {
		return false, []error{&InvalidCIdentifierError{Field: field, Value: id}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCIdentifierError.
func (e *InvalidCIdentifierError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid C identifier %q", e.Value)
	}
	return fmt.Sprintf("%s: invalid C identifier %q", e.Field, e.Value)
}

// Unwrap returns ErrInvalidCIdentifier for errors.Is() compatibility.
func (e *InvalidCIdentifierError) Unwrap() error { return ErrInvalidCIdentifier }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}
