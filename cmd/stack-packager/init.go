package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackvity/stack-packager/pkg/packager"
	"github.com/stackvity/stack-packager/pkg/packager/scaffold"
)

// initCmd generates an initial installer source document from the manifest.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generates an installer source document from the project manifest.",
	Long: `init creates a starting installer source document (wix/main.wxs by
default) from the fields of the project manifest. The generated file builds
as-is and is meant to be committed and customized.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath, _ := cmd.Flags().GetString("manifest")
		if manifestPath == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			manifestPath = cwd
		}
		manifest, err := packager.LoadManifest(manifestPath)
		if err != nil {
			return err
		}

		opts := scaffold.Options{}
		opts.ProductName, _ = cmd.Flags().GetString("product-name")
		opts.Manufacturer, _ = cmd.Flags().GetString("manufacturer")
		opts.Description, _ = cmd.Flags().GetString("description")
		opts.HelpURL, _ = cmd.Flags().GetString("url")
		opts.EULAPath, _ = cmd.Flags().GetString("eula")
		opts.LicensePath, _ = cmd.Flags().GetString("license")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Force, _ = cmd.Flags().GetBool("force")

		dest, err := scaffold.Generate(manifest, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", dest)
		return nil
	},
}

func init() {
	initCmd.Flags().String("product-name", "", "Override the product name (default is the package name)")
	initCmd.Flags().String("manufacturer", "", "Override the manufacturer (default is the first package author)")
	initCmd.Flags().StringP("description", "d", "", "Override the product description")
	initCmd.Flags().StringP("url", "u", "", "Override the help link (default is documentation, homepage, or repository)")
	initCmd.Flags().String("eula", "", "Path to an RTF license agreement shown during installation")
	initCmd.Flags().String("license", "", "Path to a license file installed beside the binary")
	initCmd.Flags().StringP("output", "o", "", "Destination path for the generated document (default is wix/main.wxs beside the manifest)")
	initCmd.Flags().Bool("force", false, "Overwrite the destination file if it exists")

	rootCmd.AddCommand(initCmd)
}
