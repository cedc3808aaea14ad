package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/uldk-cli/internal/cascade"
	"github.com/sells-group/uldk-cli/pkg/uldk"
)

var (
	cascadeVoivodeship string
	cascadeDistrict    string
	cascadeCommune     string
)

var cascadeCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Run the seeded unit drill-down",
	Long:  "Fetches the voivodeship list plus the children of each seeded unit in one go, printing every populated level. Seeds default to the config file's seed section.",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := cascade.Seed{
			Voivodeship: cascadeVoivodeship,
			District:    cascadeDistrict,
			Commune:     cascadeCommune,
		}
		if seed.Voivodeship == "" {
			seed.Voivodeship = cfg.Seed.Voivodeship
		}
		if seed.District == "" {
			seed.District = cfg.Seed.District
		}
		if seed.Commune == "" {
			seed.Commune = cfg.Seed.Commune
		}

		c := cascade.New(cmd.Context(), newULDKClient(), seed)
		if msg := c.Err(); msg != "" {
			return eris.New(msg)
		}

		out := cmd.OutOrStdout()
		printLevel(out, "wojewodztwo", c.Voivodeships())
		printLevel(out, "powiat", c.Districts())
		printLevel(out, "gmina", c.Communes())
		printLevel(out, "obreb", c.Precincts())
		return nil
	},
}

func printLevel(w io.Writer, kind string, opts []uldk.Option) {
	if len(opts) == 0 {
		return
	}
	fmt.Fprintf(w, "# %s\n", kind)
	for _, opt := range opts {
		fmt.Fprintf(w, "%s\t%s\n", opt.Value, opt.Label)
	}
}

func init() {
	cascadeCmd.Flags().StringVar(&cascadeVoivodeship, "voivodeship", "", "voivodeship TERYT code whose districts to fetch")
	cascadeCmd.Flags().StringVar(&cascadeDistrict, "district", "", "district TERYT code whose communes to fetch")
	cascadeCmd.Flags().StringVar(&cascadeCommune, "commune", "", "commune TERYT code whose precincts to fetch")
	rootCmd.AddCommand(cascadeCmd)
}
