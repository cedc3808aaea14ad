package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/uldk-cli/pkg/uldk"
)

// WriteUnitsXLSX writes a unit list to an XLSX workbook with one sheet
// named after the unit kind and a header row.
func WriteUnitsXLSX(path, kind string, opts []uldk.Option) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet(kind)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", kind)
	}

	header := sheet.AddRow()
	header.AddCell().Value = "label"
	header.AddCell().Value = "teryt"

	for _, opt := range opts {
		row := sheet.AddRow()
		row.AddCell().Value = opt.Label
		row.AddCell().Value = opt.Value
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
