package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/offerstack/compare-cli/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate catalog files",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configured catalog files",
	Long:  "Loads every catalog file, runs structural validation, and reports per-category product counts. Exits non-zero on the first invalid file.",
	Args:  cobra.NoArgs,
	RunE:  runCatalogValidate,
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog state and record a load",
	Long:  "Builds record pools from the configured catalogs, prints each pool's size and editor's-choice state, and records the load in the history store.",
	Args:  cobra.NoArgs,
	RunE:  runCatalogStatus,
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	files, err := loadCatalogFiles(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tPRODUCTS\tSECTION\tEDITORS CHOICE")
	for _, f := range files {
		section := f.Display.Section
		if section == "" {
			section = "(default)"
		}
		override := "-"
		if f.EditorsChoice != nil && f.EditorsChoice.Active {
			override = "override"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f.Category, len(f.Products), section, override)
	}
	tw.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d catalog file(s) valid\n", len(files))
	return nil
}

func runCatalogStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	files, err := loadCatalogFiles(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	canon := catalog.NewCanonicalizer()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tRECORDS\tEDITORS CHOICE\tLAST LOAD")
	for _, f := range files {
		pool := canon.BuildPool(f)
		_, hasChoice := pool.EditorsChoice()

		if _, err := st.RecordCatalogLoad(ctx, f.Category, pool.Len(), hasChoice); err != nil {
			return err
		}
		last, err := st.LatestCatalogLoad(ctx, f.Category)
		if err != nil {
			return err
		}

		loaded := "-"
		if last != nil {
			loaded = last.LoadedAt.Format("2006-01-02 15:04:05")
		}
		choice := "no"
		if hasChoice {
			choice = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", pool.Category(), pool.Len(), choice, loaded)
	}
	return tw.Flush()
}
