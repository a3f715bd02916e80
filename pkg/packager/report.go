package packager

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Plan is the serializable view of a resolved Configuration, rendered by the
// dry-run mode so callers can inspect what a real run would do.
type Plan struct {
	Name           string   `json:"name" yaml:"name"`
	Version        string   `json:"version" yaml:"version"`
	EncodedVersion string   `json:"encodedVersion" yaml:"encodedVersion"`
	Culture        string   `json:"culture" yaml:"culture"`
	Locale         string   `json:"locale,omitempty" yaml:"locale,omitempty"`
	Sources        []string `json:"sources" yaml:"sources"`
	CompilerArgs   []string `json:"compilerArgs,omitempty" yaml:"compilerArgs,omitempty"`
	LinkerArgs     []string `json:"linkerArgs,omitempty" yaml:"linkerArgs,omitempty"`
	ObjectDir      string   `json:"objectDir" yaml:"objectDir"`
	Installer      string   `json:"installer" yaml:"installer"`
	Platform       string   `json:"platform" yaml:"platform"`
	Profile        string   `json:"profile" yaml:"profile"`
	SkipBuild      bool     `json:"skipBuild" yaml:"skipBuild"`
	BuildCommand   []string `json:"buildCommand,omitempty" yaml:"buildCommand,omitempty"`
	Manifest       string   `json:"manifest" yaml:"manifest"`
}

// NewPlan projects a Configuration into its reportable form.
func NewPlan(cfg *Configuration) Plan {
	return Plan{
		Name:           cfg.Name,
		Version:        cfg.Version.String(),
		EncodedVersion: cfg.EncodedVersion,
		Culture:        string(cfg.Culture),
		Locale:         cfg.LocalePath,
		Sources:        cfg.Sources,
		CompilerArgs:   cfg.CompilerArgs,
		LinkerArgs:     cfg.LinkerArgs,
		ObjectDir:      cfg.ObjectDir,
		Installer:      cfg.InstallerPath,
		Platform:       string(cfg.Platform),
		Profile:        string(cfg.Profile),
		SkipBuild:      cfg.SkipBuild,
		BuildCommand:   cfg.BuildCommand,
		Manifest:       cfg.ManifestPath,
	}
}

// Render writes the plan to w in the requested format.
func (p Plan) Render(w io.Writer, format OutputFormat) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	case OutputFormatText:
		return p.renderText(w)
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidValue, format)
	}
}

func (p Plan) renderText(w io.Writer) error {
	lines := []struct {
		label string
		value string
	}{
		{"Product", p.Name},
		{"Version", p.Version},
		{"Installer version", p.EncodedVersion},
		{"Culture", p.Culture},
		{"Locale", p.Locale},
		{"Platform", p.Platform},
		{"Profile", p.Profile},
		{"Object directory", p.ObjectDir},
		{"Installer", p.Installer},
		{"Manifest", p.Manifest},
	}
	for _, line := range lines {
		if line.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-18s %s\n", line.label+":", line.value); err != nil {
			return err
		}
	}
	for _, src := range p.Sources {
		if _, err := fmt.Fprintf(w, "%-18s %s\n", "Source:", src); err != nil {
			return err
		}
	}
	if len(p.BuildCommand) > 0 {
		if _, err := fmt.Fprintf(w, "%-18s %v\n", "Build command:", p.BuildCommand); err != nil {
			return err
		}
	}
	if p.SkipBuild {
		if _, err := fmt.Fprintf(w, "%-18s true\n", "Skip build:"); err != nil {
			return err
		}
	}
	return nil
}
