package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/offerstack/compare-cli/internal/catalog"
	"github.com/offerstack/compare-cli/internal/compare"
	"github.com/offerstack/compare-cli/internal/model"
)

var (
	compareCategory string
	compareSection  string
	compareLimit    int
	compareNoSave   bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <product-id> <product-id> [product-id]",
	Short: "Compare 2-3 products from the catalog",
	Long:  "Resolves the given product ids against the configured catalog, builds the comparison matrix with synonym-aware feature grouping, and prints it together with summary picks.",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareCategory, "category", "", "catalog category when multiple catalogs are loaded")
	compareCmd.Flags().StringVar(&compareSection, "section", "", "summary card section: features, perks, or specs")
	compareCmd.Flags().IntVar(&compareLimit, "limit", 0, "items per summary card")
	compareCmd.Flags().BoolVar(&compareNoSave, "no-save", false, "skip recording the run in the history store")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	files, err := loadCatalogFiles(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	file, err := pickFile(files, compareCategory)
	if err != nil {
		return err
	}

	opts := serviceOptions(file)
	if compareSection != "" {
		opts.Section = model.DisplaySection(compareSection)
		if !opts.Section.Valid() {
			return fmt.Errorf("invalid section %q", compareSection)
		}
	}
	if compareLimit > 0 {
		opts.CardLimit = compareLimit
	}

	pool := catalog.NewCanonicalizer().BuildPool(file)
	svc := compare.NewService(pool, opts)

	result, err := svc.Compare(ctx, args)
	if err != nil {
		return err
	}

	renderResult(cmd.OutOrStdout(), result, opts.Section)

	if !compareNoSave {
		saveRun(cmd, file.Category, args, result)
	}
	return nil
}

// saveRun persists the run best-effort; history failures never fail the
// comparison itself.
func saveRun(cmd *cobra.Command, category model.Category, selection []string, result *model.ComparisonResult) {
	st, err := openStore()
	if err != nil {
		zap.L().Warn("compare: history store unavailable", zap.Error(err))
		return
	}
	defer st.Close()

	ctx := cmd.Context()
	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("compare: history migration failed", zap.Error(err))
		return
	}
	run, err := st.SaveRun(ctx, category, selection, result)
	if err != nil {
		zap.L().Warn("compare: saving run failed", zap.Error(err))
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nRun saved: %s\n", run.ID)
}

var titleCaser = cases.Title(language.English)

func renderResult(w io.Writer, result *model.ComparisonResult, section model.DisplaySection) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := make([]string, 0, len(result.Matrix.Columns)+1)
	header = append(header, "")
	for _, col := range result.Matrix.Columns {
		header = append(header, col.Name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	fmt.Fprintln(tw, "Basic Information\t")
	for _, row := range result.Matrix.BasicInfo {
		writeValueRow(tw, row)
	}

	writeBoolSection(tw, model.SectionPerks, result.Matrix.Perks)
	writeBoolSection(tw, model.SectionFeatures, result.Matrix.Features)

	if len(result.Matrix.Specs) > 0 {
		fmt.Fprintln(tw, "Specifications\t")
		for _, row := range result.Matrix.Specs {
			writeValueRow(tw, row)
		}
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best Overall:  %s\n", result.Summary.BestOverall.Name)
	if result.Summary.BestValue != nil {
		fmt.Fprintf(w, "Best Value:    %s\n", result.Summary.BestValue.Name)
	} else {
		fmt.Fprintf(w, "Best Value:    %s\n", model.BestValueUnknown)
	}
	fmt.Fprintf(w, "Most Features: %s\n", result.Summary.MostFeatures.Name)

	if len(result.Cards) > 0 {
		fmt.Fprintf(w, "\nTop %s\n", titleCaser.String(string(section)))
		for _, card := range result.Cards {
			labels := make([]string, 0, len(card.Items))
			for _, it := range card.Items {
				labels = append(labels, it.Text)
			}
			if len(labels) == 0 {
				labels = append(labels, "-")
			}
			fmt.Fprintf(w, "  %s: %s\n", card.Name, strings.Join(labels, ", "))
		}
	}
}

func writeValueRow(tw *tabwriter.Writer, row model.ValueRow) {
	cells := append([]string{"  " + row.Label}, row.Values...)
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func writeBoolSection(tw *tabwriter.Writer, section model.DisplaySection, rows []model.BoolRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(tw, titleCaser.String(string(section))+"\t")
	for _, row := range rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, "  "+row.Label)
		for _, has := range row.Cells {
			if has {
				cells = append(cells, "yes")
			} else {
				cells = append(cells, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
}
