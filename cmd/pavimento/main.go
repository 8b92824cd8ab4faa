package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"Pavement/internal/calc/axles"
	"Pavement/internal/calc/damage"
	"Pavement/internal/calc/design"
	"Pavement/internal/calc/importer"
	"Pavement/internal/calc/report"
	"Pavement/internal/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var level string
	root := &cobra.Command{
		Use:          "pavimento",
		Short:        "Flexible pavement design by the UNAM method",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Setup(cmd.ErrOrStderr(), level)
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(designCmd())
	root.AddCommand(esalsCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(importCmd())
	return root
}

func designCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "design [design.yaml]",
		Short: "Check every interface of a pavement section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := design.Load(args[0])
			if err != nil {
				return err
			}
			res, err := design.Calculate(in)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printDesign(cmd.OutOrStdout(), res)
			if !res.Pass {
				return fmt.Errorf("section does not pass")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func esalsCmd() *cobra.Command {
	var depth float64
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "esals [design.yaml]",
		Short: "Equivalent axles at a single depth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := design.Load(args[0])
			if err != nil {
				return err
			}
			if in.LifeYears == 0 {
				in.LifeYears = 15
			}
			res, err := damage.Calculate(damage.Input{
				Input: axles.Input{
					RoadClass:   in.RoadClass,
					Lanes:       in.Lanes,
					LoadedPct:   in.LoadedPct,
					TDPA:        in.TDPA,
					Composition: in.Composition,
				},
				DepthCM:       depth,
				GrowthRatePct: in.GrowthRatePct,
				LifeYears:     in.LifeYears,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printESALs(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&depth, "depth", "z", 0, "depth below the surface, cm")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.MarkFlagRequired("depth")
	return cmd
}

func reportCmd() *cobra.Command {
	var out string
	var signer report.Signer
	cmd := &cobra.Command{
		Use:   "report [design.yaml]",
		Short: "Write the calculation report as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := design.Load(args[0])
			if err != nil {
				return err
			}
			res, err := design.Calculate(in)
			if err != nil {
				return err
			}
			meta := report.NewMeta(signer)
			if err := writeReport(out, res, meta); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  folio %s\n", out, meta.Folio)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "memoria.pdf", "PDF file to write")
	cmd.Flags().StringVar(&signer.FullName, "engineer", "", "name of the signing engineer")
	cmd.Flags().StringVar(&signer.License, "license", "", "professional licence number")
	cmd.Flags().StringVar(&signer.Organization, "org", "", "organization")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [composition.xlsx]",
		Short: "Read a vehicle composition sheet and print it as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			comp, err := importer.ParseComposition(f)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(map[string]any{"composition": comp}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// writeReport renders the whole PDF before touching the file, so a failed
// render leaves nothing behind.
func writeReport(path string, res design.Result, meta report.Meta) error {
	var buf bytes.Buffer
	if err := report.Render(&buf, res, meta); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAIL"
}

func printDesign(w io.Writer, res design.Result) {
	fmt.Fprintf(w, "%s  %s  (km %s - %s)\n", res.Project.Road, res.Project.Section, res.Project.KmStart, res.Project.KmEnd)
	fmt.Fprintf(w, "road class %s, fcp %.2f, CT %.4f, U %.4f, VRS0 %.4f / %.4f\n\n",
		res.Table.RoadClass, res.Volumes.LaneFactor, res.GrowthFactor,
		res.Reliability.U, res.Reliability.VRS0Base, res.Reliability.VRS0Sub)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "interface\tZ cm\tCBR\tESALs\tfz\tZG req\tZG built\t\t")
	for _, c := range res.Checks {
		fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%.4g\t%.4f\t%.1f\t%.1f\t%s\t\n",
			c.Name, c.DepthCM, c.CBR, c.ESALs, c.Fz, c.RequiredZG, c.ActualZG, verdict(c.Pass))
	}
	tw.Flush()

	for _, msg := range res.Warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	fmt.Fprintf(w, "\nsection: %s\n", verdict(res.Pass))
}

func printESALs(w io.Writer, res damage.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "axle\tcondition\tt\taxles/yr\tradius cm\tstress\td\tequivalent\t")
	for _, r := range res.Evaluation.Rows {
		if r.FirstYear == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.0f\t%.2f\t%.4f\t%.4f\t%.0f\t\n",
			r.Description, r.Condition.Label(), r.LoadTon, r.FirstYear, r.RadiusCM, r.Stress, r.UnitDamage, r.Equivalent)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nZ = %g cm, first year %.0f, CT %.4f, design life ESALs %.0f\n",
		res.Evaluation.DepthCM, res.Evaluation.Total, res.GrowthFactor, res.ESALs)
}
