// Package units provides an embedded offline voivodeship list (for when
// the live service is unreachable) and Polish-collation sorting of unit
// lists.
package units

import (
	_ "embed"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/uldk-cli/pkg/uldk"
)

//go:embed voivodeships.yaml
var voivodeshipsYAML []byte

// FallbackVoivodeships returns the embedded list of the 16 voivodeships
// with their TERYT codes.
func FallbackVoivodeships() ([]uldk.Option, error) {
	var opts []uldk.Option
	if err := yaml.Unmarshal(voivodeshipsYAML, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// SortByLabel sorts options in place by label under Polish collation, so
// Ł sorts after L rather than after Z.
func SortByLabel(opts []uldk.Option) {
	c := collate.New(language.Polish)
	sort.SliceStable(opts, func(i, j int) bool {
		return c.CompareString(opts[i].Label, opts[j].Label) < 0
	})
}
