package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/uldk-cli/internal/export"
	"github.com/sells-group/uldk-cli/internal/units"
	"github.com/sells-group/uldk-cli/pkg/uldk"
)

var (
	unitsSort     bool
	unitsXLSX     string
	unitsFallback bool
)

var unitsCmd = &cobra.Command{
	Use:   "units <wojewodztwo|powiat|gmina|obreb> [teryt]",
	Short: "List administrative units",
	Long:  "Lists administrative units of one level. All levels below wojewodztwo require the parent unit's TERYT code.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		teryt := ""
		if len(args) == 2 {
			teryt = args[1]
		}

		client := newULDKClient()
		ctx := cmd.Context()

		var opts []uldk.Option
		var err error
		switch kind {
		case uldk.KindVoivodeship:
			opts, err = client.Voivodeships(ctx)
			if err != nil && unitsFallback {
				zap.L().Warn("units: live fetch failed, using embedded list", zap.Error(err))
				opts, err = units.FallbackVoivodeships()
			}
		case uldk.KindDistrict:
			opts, err = client.Districts(ctx, teryt)
		case uldk.KindCommune:
			opts, err = client.Communes(ctx, teryt)
		case uldk.KindPrecinct:
			opts, err = client.Precincts(ctx, teryt)
		default:
			return eris.Errorf("unknown unit kind %q", kind)
		}
		if err != nil {
			return eris.Wrapf(err, "list %s", kind)
		}

		if kind != uldk.KindVoivodeship && teryt == "" {
			zap.L().Warn("units: no teryt given, result may be empty", zap.String("kind", kind))
		}

		if unitsSort {
			units.SortByLabel(opts)
		}

		if unitsXLSX != "" {
			if err := export.WriteUnitsXLSX(unitsXLSX, kind, opts); err != nil {
				return err
			}
			zap.L().Info("units: wrote workbook",
				zap.String("path", unitsXLSX),
				zap.Int("rows", len(opts)),
			)
			return nil
		}

		for _, opt := range opts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", opt.Value, opt.Label)
		}
		return nil
	},
}

func init() {
	unitsCmd.Flags().BoolVar(&unitsSort, "sort", false, "sort by label with Polish collation")
	unitsCmd.Flags().StringVar(&unitsXLSX, "xlsx", "", "write results to an XLSX file instead of stdout")
	unitsCmd.Flags().BoolVar(&unitsFallback, "fallback", false, "fall back to the embedded voivodeship list if the service is unreachable")
	rootCmd.AddCommand(unitsCmd)
}
