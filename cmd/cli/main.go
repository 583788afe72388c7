package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"bmireport/adapters/excel"
	"bmireport/app"
	"bmireport/domain/bmi"
	"bmireport/domain/dataset"
	"bmireport/internal"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bmireport-cli",
		Short: "BMI classification and correlation reports from the command line",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newGridCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var validationFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report [data-file]",
		Short: "Print correlation, agreement and category profile for a dataset",
		Long: `Compute BMI for every row of a CSV or XLSX file, compare the derived category
with the stated Index and print the Spearman correlation between BMI and Index.

Example: bmireport-cli report bmi_train.csv --validation bmi_validation.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), args[0], validationFile, asJSON)
		},
	}

	cmd.Flags().StringVar(&validationFile, "validation", "", "Optional validation file reported alongside the training file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func newGridCmd() *cobra.Command {
	g := bmi.DefaultGridRange()

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the height x weight mapping grid as CSV",
		Long: `Classify every integer height/weight combination of the range and write
Height,Weight,BMI,Index rows to stdout in height-major order.

Example: bmireport-cli grid --height-min 150 --height-max 160 > grid.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().IntVar(&g.HeightMin, "height-min", g.HeightMin, "Lowest height in cm")
	cmd.Flags().IntVar(&g.HeightMax, "height-max", g.HeightMax, "Highest height in cm")
	cmd.Flags().IntVar(&g.WeightMin, "weight-min", g.WeightMin, "Lowest weight in kg")
	cmd.Flags().IntVar(&g.WeightMax, "weight-max", g.WeightMax, "Highest weight in kg")

	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [data-file] [out.xlsx]",
		Short: "Write the annotated table, mapping grid and summary to an XLSX workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}
	return cmd
}

func runReport(ctx context.Context, out io.Writer, trainFile, validationFile string, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := internal.DefaultLogger

	pair, err := excel.LoadPair(ctx, trainFile, validationFile, logger)
	if err != nil {
		return err
	}

	service := app.NewReportService(logger)
	tables := []*dataset.Dataset{pair.Train}
	if pair.Validation != nil {
		tables = append(tables, pair.Validation)
	}

	for _, ds := range tables {
		opts := app.DefaultOptions()
		opts.SkipGrid = true
		report, err := service.BuildReport(ctx, ds, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", ds.Name, err)
		}

		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			continue
		}
		printReport(out, report)
	}
	return nil
}

func printReport(out io.Writer, report *app.Report) {
	a := report.Agreement
	fmt.Fprintf(out, "Dataset %s (%s)\n", report.DatasetName, report.TableHash.Short())
	fmt.Fprintf(out, "  rows: %d  included: %d  excluded: %d  invalid: %d  agreement: %.1f%%\n",
		a.Total, a.Included, a.Excluded, a.Invalid, a.InclusionRate*100)

	for _, c := range report.Correlations {
		if !c.Defined {
			fmt.Fprintf(out, "  %s: undefined (%s)\n", c.Method, c.Error)
			continue
		}
		fmt.Fprintf(out, "  %s: %.4f  p=%.3g  n=%d  %s\n", c.Method, c.Rounded, c.PValue, c.SampleSize, c.Signal)
	}
	if report.IncludedSpearman.Defined {
		fmt.Fprintf(out, "  spearman (included rows): %.4f\n", report.IncludedSpearman.Rounded)
	}

	all := report.ProfileAll.Summary
	fmt.Fprintf(out, "  BMI overall: n=%d mean=%.2f sd=%.2f median=%.2f\n", all.Count, all.Mean, all.StdDev, all.Median)
	fmt.Fprintln(out, "  BMI by computed Index:")
	for _, p := range report.ProfilesComputed {
		s := p.Profile.Summary
		fmt.Fprintf(out, "    %d %-17s n=%-5d mean=%6.2f median=%6.2f min=%6.2f max=%6.2f\n",
			p.Category, p.Label, s.Count, s.Mean, s.Median, s.Min, s.Max)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
}

func runGrid(out io.Writer, g bmi.GridRange) error {
	cells, err := bmi.BuildGrid(g)
	if err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"Height", "Weight", "BMI", "Index"}); err != nil {
		return err
	}
	for _, c := range cells {
		record := []string{
			strconv.Itoa(c.Height),
			strconv.Itoa(c.Weight),
			strconv.FormatFloat(c.BMI, 'f', 4, 64),
			strconv.Itoa(int(c.Index)),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func runExport(ctx context.Context, out io.Writer, dataFile, outFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := internal.DefaultLogger

	ds, err := excel.NewDataReader(dataFile).WithLogger(logger).Load()
	if err != nil {
		return err
	}

	report, err := app.NewReportService(logger).BuildReport(ctx, ds, app.DefaultOptions())
	if err != nil {
		return err
	}

	if err := excel.NewReportWriter().SaveAs(outFile, report); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote report %s (%d rows, %d grid cells) to %s\n", report.ID, len(report.Rows), len(report.Grid), outFile)
	return nil
}
