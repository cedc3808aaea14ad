package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/uldk-cli/internal/store"
)

var (
	parcelShp     string
	parcelNoCache bool
)

var parcelCmd = &cobra.Command{
	Use:   "parcel <id>...",
	Short: "Fetch cadastral parcel geometry",
	Long:  "Fetches the geometry of one or more cadastral parcels by parcel identifier (e.g. 140809_5.0001.34/2), reprojected to WGS84, as GeoJSON feature collections.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newULDKClient()
		return geometryLookup(cmd, store.KindParcel, args, client.ParcelByID, parcelShp, parcelNoCache)
	},
}

func init() {
	parcelCmd.Flags().StringVar(&parcelShp, "shp", "", "write geometries to a shapefile instead of stdout")
	parcelCmd.Flags().BoolVar(&parcelNoCache, "no-cache", false, "bypass the geometry cache")
	rootCmd.AddCommand(parcelCmd)
}
