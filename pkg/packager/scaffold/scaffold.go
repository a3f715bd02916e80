// Package scaffold generates an initial installer source document from the
// fields of a project manifest. The generated file is a starting point: it
// compiles and links as-is, and projects customize it afterwards.
package scaffold

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/stackvity/stack-packager/pkg/packager"
)

//go:embed main.wxs.tmpl
var mainTemplate string

// Options control scaffold generation. Every string field overrides the value
// otherwise derived from the manifest; zero values mean "derive".
type Options struct {
	// ProductName overrides the package name as the installed product name.
	ProductName string
	// Manufacturer overrides the manufacturer derived from the first author.
	Manufacturer string
	// Description overrides the package description.
	Description string
	// HelpURL overrides the support link derived from the documentation,
	// homepage, or repository fields.
	HelpURL string
	// EULAPath names an RTF license agreement shown during installation. The
	// file must exist. When empty, a license-file manifest entry with an .rtf
	// extension is used instead.
	EULAPath string
	// LicensePath names a license file installed beside the binary.
	LicensePath string
	// Output is the destination path. Empty means the source folder beside
	// the manifest, using the conventional main document name.
	Output string
	// Force allows overwriting an existing destination file.
	Force bool
}

// templateData is the flattened field set consumed by the document template.
type templateData struct {
	ProductName  string
	Manufacturer string
	Description  string
	HelpURL      string
	BinaryName   string
	EULA         string
	License      string
	UpgradeCode  string
	PathGUID     string
}

// Generate renders the installer source document for the given manifest and
// writes it to the destination resolved from opts.
func Generate(manifest *packager.Manifest, opts Options) (string, error) {
	data, err := buildData(manifest, opts)
	if err != nil {
		return "", err
	}
	dest := opts.Output
	if dest == "" {
		dest = filepath.Join(manifest.Dir(), packager.SourceFolderName, "main"+packager.SourceFileExtension)
	}
	if !opts.Force {
		if _, err := os.Stat(dest); err == nil {
			return "", fmt.Errorf("%w: %q already exists, use force to overwrite", packager.ErrInvalidValue, dest)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("cannot create %q: %w", filepath.Dir(dest), err)
	}
	tmpl, err := template.New("main").Parse(mainTemplate)
	if err != nil {
		return "", fmt.Errorf("cannot parse document template: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("cannot create %q: %w", dest, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("cannot render %q: %w", dest, err)
	}
	return dest, nil
}

func buildData(manifest *packager.Manifest, opts Options) (templateData, error) {
	name, ok := manifest.PackageStr("name")
	if !ok && opts.ProductName == "" {
		return templateData{}, fmt.Errorf("%w: name", packager.ErrMissingField)
	}
	product := opts.ProductName
	if product == "" {
		product = name
	}
	if name == "" {
		name = product
	}
	manufacturer, err := resolveManufacturer(manifest, opts)
	if err != nil {
		return templateData{}, err
	}
	description := opts.Description
	if description == "" {
		description, _ = manifest.PackageStr("description")
	}
	eula, license, err := resolveLicensing(manifest, opts)
	if err != nil {
		return templateData{}, err
	}
	return templateData{
		ProductName:  product,
		Manufacturer: manufacturer,
		Description:  description,
		HelpURL:      resolveHelpURL(manifest, opts),
		BinaryName:   name,
		EULA:         eula,
		License:      license,
		UpgradeCode:  strings.ToUpper(uuid.NewString()),
		PathGUID:     strings.ToUpper(uuid.NewString()),
	}, nil
}

// resolveManufacturer derives the manufacturer from the first entry of the
// authors array, stripping a trailing email address if present.
func resolveManufacturer(manifest *packager.Manifest, opts Options) (string, error) {
	if opts.Manufacturer != "" {
		return opts.Manufacturer, nil
	}
	authors, ok := manifest.PackageStrSlice("authors")
	if !ok || len(authors) == 0 {
		return "", fmt.Errorf("%w: authors", packager.ErrMissingField)
	}
	return stripEmail(authors[0]), nil
}

// stripEmail removes an angle-bracketed email suffix from an author entry.
func stripEmail(author string) string {
	if idx := strings.Index(author, "<"); idx >= 0 {
		return strings.TrimSpace(author[:idx])
	}
	return strings.TrimSpace(author)
}

// resolveHelpURL picks the support link: documentation first, then homepage,
// then repository. An empty result omits the help link entirely.
func resolveHelpURL(manifest *packager.Manifest, opts Options) string {
	if opts.HelpURL != "" {
		return opts.HelpURL
	}
	for _, key := range []string{"documentation", "homepage", "repository"} {
		if url, ok := manifest.PackageStr(key); ok && url != "" {
			return url
		}
	}
	return ""
}

// resolveLicensing determines the EULA shown by the installer and the license
// file installed alongside the binary. An explicit EULA must exist; a
// manifest license-file is used as the EULA only when it is an RTF document.
func resolveLicensing(manifest *packager.Manifest, opts Options) (eula, license string, err error) {
	license = opts.LicensePath
	declared, _ := manifest.PackageStr("license-file")
	if license == "" {
		license = declared
	}
	if opts.EULAPath != "" {
		if err := packager.ValidateFile(opts.EULAPath); err != nil {
			return "", "", err
		}
		return opts.EULAPath, license, nil
	}
	if declared != "" && strings.EqualFold(filepath.Ext(declared), ".rtf") {
		candidate := declared
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(manifest.Dir(), candidate)
		}
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, license, nil
		}
	}
	return "", license, nil
}
