package cli

import (
	"fmt"
	"os"

	"github.com/civicdata/dallaspd/pkg/export"
	"github.com/civicdata/dallaspd/pkg/soda"
)

// writeOutput writes tbl to path in the requested format. An empty path
// or "-" writes to stdout.
func writeOutput(tbl soda.Table, path, format string) error {
	toStdout := path == "" || path == "-"

	var err error
	switch format {
	case "json":
		if toStdout {
			err = export.WriteJSON(tbl, os.Stdout)
		} else {
			err = export.ExportJSON(tbl, path)
		}
	case "csv":
		if toStdout {
			err = export.WriteCSV(tbl, os.Stdout)
		} else {
			err = export.ExportCSV(tbl, path)
		}
	default:
		return fmt.Errorf("unknown format %q (expected json or csv)", format)
	}
	if err != nil {
		return err
	}
	if !toStdout {
		printFile(path)
	}
	return nil
}
