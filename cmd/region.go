package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/uldk-cli/internal/store"
)

var (
	regionShp     string
	regionNoCache bool
)

var regionCmd = &cobra.Command{
	Use:   "region <teryt>...",
	Short: "Fetch administrative region geometry",
	Long:  "Fetches the boundary geometry of one or more administrative regions by TERYT code, reprojected to WGS84, as GeoJSON feature collections.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newULDKClient()
		return geometryLookup(cmd, store.KindRegion, args, client.RegionByID, regionShp, regionNoCache)
	},
}

func init() {
	regionCmd.Flags().StringVar(&regionShp, "shp", "", "write geometries to a shapefile instead of stdout")
	regionCmd.Flags().BoolVar(&regionNoCache, "no-cache", false, "bypass the geometry cache")
	rootCmd.AddCommand(regionCmd)
}
