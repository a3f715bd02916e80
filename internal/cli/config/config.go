// Package config assembles the packager options from the layered sources:
// built-in defaults, an optional configuration file, environment variables,
// and command-line flags, in ascending precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stackvity/stack-packager/pkg/packager"
)

const (
	// EnvPrefix namespaces the environment variables read by the loader.
	// A key named output-format is read from STACKPACKAGER_OUTPUT_FORMAT.
	EnvPrefix = "STACKPACKAGER"
	// DefaultConfigName is the base name of the configuration file searched
	// for in the working directory and the user configuration directory.
	DefaultConfigName = "stack-packager"
)

// flagKeys lists every flag bound into the loader. Binding is explicit so a
// renamed flag fails loudly at startup rather than silently reading defaults.
var flagKeys = []string{
	"manifest",
	"name",
	"install-version",
	"culture",
	"locale",
	"output",
	"include",
	"compiler-arg",
	"linker-arg",
	"dbg-build",
	"dbg-name",
	"no-build",
	"bin-path",
	"nocapture",
	"dry-run",
	"output-format",
	"verbose",
}

// LoadAndValidate builds the effective options and the process logger.
// cfgFile optionally names an explicit configuration file; verbose is the
// already-parsed persistent flag, honored even when no other source sets it;
// flags carries the parsed command line and wins over every other source.
func LoadAndValidate(cfgFile string, verbose bool, flags *pflag.FlagSet) (packager.Options, *slog.Logger, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing default-location file is fine; an explicit file or an
		// unreadable/unparsable one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return packager.Options{}, nil, fmt.Errorf("cannot read configuration file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range flagKeys {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return packager.Options{}, nil, fmt.Errorf("cannot bind flag %q: %w", key, err)
				}
			}
		}
	}

	opts := packager.Options{
		ManifestPath:  v.GetString("manifest"),
		BinPath:       v.GetString("bin-path"),
		CaptureOutput: !v.GetBool("nocapture"),
		DryRun:        v.GetBool("dry-run"),
		OutputFormat:  packager.OutputFormat(v.GetString("output-format")),
		Verbose:       v.GetBool("verbose") || verbose,
		Overrides: packager.Overrides{
			Name:         v.GetString("name"),
			Version:      v.GetString("install-version"),
			Culture:      v.GetString("culture"),
			Locale:       v.GetString("locale"),
			Output:       v.GetString("output"),
			Includes:     sliceOrNil(v.GetStringSlice("include")),
			CompilerArgs: sliceOrNil(v.GetStringSlice("compiler-arg")),
			LinkerArgs:   sliceOrNil(v.GetStringSlice("linker-arg")),
			DebugBuild:   v.GetBool("dbg-build"),
			DebugName:    v.GetBool("dbg-name"),
			SkipBuild:    v.GetBool("no-build"),
		},
	}

	switch opts.OutputFormat {
	case packager.OutputFormatText, packager.OutputFormatJSON, packager.OutputFormatYAML:
	default:
		return packager.Options{}, nil, fmt.Errorf(
			"%w: output-format must be one of text, json, yaml, got %q",
			packager.ErrInvalidValue, opts.OutputFormat)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	opts.Logger = handler

	return opts, slog.New(handler), nil
}

// sliceOrNil maps an empty slice to nil so an unset list parameter always has
// the zero value Overrides treats as absent.
func sliceOrNil(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("manifest", "")
	v.SetDefault("name", "")
	v.SetDefault("install-version", "")
	v.SetDefault("culture", "")
	v.SetDefault("locale", "")
	v.SetDefault("output", "")
	v.SetDefault("include", []string{})
	v.SetDefault("compiler-arg", []string{})
	v.SetDefault("linker-arg", []string{})
	v.SetDefault("dbg-build", false)
	v.SetDefault("dbg-name", false)
	v.SetDefault("no-build", false)
	v.SetDefault("bin-path", "")
	v.SetDefault("nocapture", !packager.DefaultCaptureOutput)
	v.SetDefault("dry-run", false)
	v.SetDefault("output-format", string(packager.DefaultOutputFormat))
	v.SetDefault("verbose", packager.DefaultVerbose)
}
