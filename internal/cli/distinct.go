package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicdata/dallaspd/pkg/datasets"
	"github.com/civicdata/dallaspd/pkg/datasets/arrests"
	"github.com/civicdata/dallaspd/pkg/datasets/charges"
	"github.com/civicdata/dallaspd/pkg/datasets/incidents"
	"github.com/civicdata/dallaspd/pkg/datasets/shootings"
	"github.com/civicdata/dallaspd/pkg/datasets/useofforce"
)

// fixedDatasets maps dataset names to their descriptors. The
// use-of-force dataset is year-dependent and resolved separately.
var fixedDatasets = map[string]datasets.Dataset{
	"incidents": incidents.Descriptor,
	"arrests":   arrests.Descriptor,
	"charges":   charges.Descriptor,
	"shootings": shootings.Descriptor,
}

func resolveDataset(name string, year int) (datasets.Dataset, error) {
	if name == "useofforce" {
		return useofforce.Descriptor(year)
	}
	if ds, ok := fixedDatasets[name]; ok {
		return ds, nil
	}
	return datasets.Dataset{}, fmt.Errorf("unknown dataset %q (expected incidents, arrests, charges, shootings, or useofforce)", name)
}

func newDistinctCmd() *cobra.Command {
	var (
		max  int
		year int
	)
	cmd := &cobra.Command{
		Use:   "distinct <dataset> <field>",
		Short: "List the distinct values of a field",
		Long: `List the distinct values of a field, sorted. Use this to discover
valid inputs for the structured filter flags.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := resolveDataset(args[0], year)
			if err != nil {
				return err
			}
			field := args[1]

			client := newClient(cmd)
			spin := newSpinner(cmd.Context(), fmt.Sprintf("querying %s.%s", ds.Name, field))
			spin.Start()
			values, err := client.Distinct(cmd.Context(), ds.ID, field, max)
			if err != nil {
				spin.StopWithError("Query failed")
				return err
			}
			spin.Stop()

			if len(values) == 0 {
				printWarning("no non-null values for %s.%s", ds.Name, field)
				return nil
			}
			printSuccess("%d distinct value(s) for %s.%s", len(values), ds.Name, field)
			for _, v := range values {
				printDetail("%s", v)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&max, "max", 0, "maximum values to request (default 5000)")
	cmd.Flags().IntVar(&year, "year", useofforce.LastYear, "dataset year (useofforce only)")
	return cmd
}
