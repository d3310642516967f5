package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civicdata/dallaspd/pkg/clean"
	"github.com/civicdata/dallaspd/pkg/datasets"
	"github.com/civicdata/dallaspd/pkg/datasets/arrests"
	"github.com/civicdata/dallaspd/pkg/datasets/charges"
	"github.com/civicdata/dallaspd/pkg/datasets/incidents"
	"github.com/civicdata/dallaspd/pkg/datasets/shootings"
	"github.com/civicdata/dallaspd/pkg/datasets/useofforce"
	"github.com/civicdata/dallaspd/pkg/soda"
)

// fetchFlags are the flags shared by every fetch subcommand.
type fetchFlags struct {
	start   string
	end     string
	where   string
	limit   int
	columns []string
	params  []string
	clean   bool
	output  string
	format  string
}

func addCommonFlags(cmd *cobra.Command, f *fetchFlags) {
	cmd.Flags().StringVar(&f.start, "start", "", "start date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date, YYYY-MM-DD (inclusive)")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum rows to fetch (-1 for all)")
	cmd.Flags().StringVar(&f.where, "where", "", "raw filter expression (replaces structured filters)")
	cmd.Flags().StringSliceVar(&f.columns, "select", nil, "columns to return")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "extra query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&f.clean, "clean", false, "normalize text and parse dates after fetching")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&f.format, "format", "json", "output format: json or csv")
}

// common builds the shared adapter options from flags and config.
func (f fetchFlags) common(cfg Config) (datasets.Common, error) {
	params, err := parseParams(f.params)
	if err != nil {
		return datasets.Common{}, err
	}
	limit := f.limit
	if limit == 0 {
		limit = cfg.Limit
	}
	return datasets.Common{
		StartDate: f.start,
		EndDate:   f.end,
		Where:     f.where,
		Limit:     limit,
		Select:    f.columns,
		Params:    params,
	}, nil
}

func parseParams(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := url.Values{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q (expected key=value)", pair)
		}
		params.Add(key, value)
	}
	return params, nil
}

// newClient builds the shared API client from the command context.
// Library progress messages flow into the active logger.
func newClient(cmd *cobra.Command) *soda.Client {
	logger := loggerFromContext(cmd.Context())
	cfg := configFromContext(cmd.Context())
	return soda.NewClient(
		soda.WithAppToken(cfg.AppToken),
		soda.WithLogger(logger.Infof),
	)
}

// cleanOptions assembles cleaning options for ds from the context.
func cleanOptions(cmd *cobra.Command, ds datasets.Dataset) clean.Options {
	logger := loggerFromContext(cmd.Context())
	cfg := configFromContext(cmd.Context())
	return clean.Options{
		TextFields: ds.TextFields,
		DateFields: ds.DateFields,
		Location:   cfg.location(),
		Logger:     logger.Warnf,
	}
}

// runFetch executes one dataset fetch behind a spinner and writes the
// result.
func runFetch(cmd *cobra.Command, f fetchFlags, name string, do func(context.Context, *soda.Client) (soda.Table, error)) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	client := newClient(cmd)

	track := newProgress(logger)
	spin := newSpinner(ctx, "fetching "+name)
	spin.Start()
	tbl, err := do(ctx, client)
	if err != nil {
		spin.StopWithError("Fetch failed")
		return err
	}
	spin.Stop()
	track.done(fmt.Sprintf("Fetched %d rows from %s", len(tbl), name))

	return writeOutput(tbl, f.output, f.format)
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a public-safety dataset",
	}
	cmd.AddCommand(newFetchIncidentsCmd())
	cmd.AddCommand(newFetchArrestsCmd())
	cmd.AddCommand(newFetchChargesCmd())
	cmd.AddCommand(newFetchShootingsCmd())
	cmd.AddCommand(newFetchUseOfForceCmd())
	return cmd
}

func newFetchIncidentsCmd() *cobra.Command {
	var (
		f         fetchFlags
		divisions []string
		districts []string
		beats     []string
		geo       bool
	)
	cmd := &cobra.Command{
		Use:   "incidents",
		Short: "Fetch police incidents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, err := f.common(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			return runFetch(cmd, f, "incidents", func(ctx context.Context, c *soda.Client) (soda.Table, error) {
				tbl, err := incidents.Fetch(ctx, c, incidents.Options{
					Common:     common,
					Divisions:  divisions,
					Districts:  districts,
					Beats:      beats,
					ConvertGeo: geo,
				})
				if err != nil {
					return nil, err
				}
				if f.clean {
					opts := cleanOptions(cmd, incidents.Descriptor)
					clean.Clean(tbl, opts)
					clean.StandardizeDivision(tbl, "division", opts)
					clean.StandardizeDistrict(tbl, "council_district", opts)
				}
				return tbl, nil
			})
		},
	}
	addCommonFlags(cmd, &f)
	cmd.Flags().StringSliceVar(&divisions, "division", nil, "filter by patrol division")
	cmd.Flags().StringSliceVar(&districts, "district", nil, "filter by council district")
	cmd.Flags().StringSliceVar(&beats, "beat", nil, "filter by patrol beat")
	cmd.Flags().BoolVar(&geo, "geo", false, "convert state-plane coordinates to WGS84")
	return cmd
}

func newFetchArrestsCmd() *cobra.Command {
	var (
		f        fetchFlags
		beats    []string
		premises []string
	)
	cmd := &cobra.Command{
		Use:   "arrests",
		Short: "Fetch police arrests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, err := f.common(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			return runFetch(cmd, f, "arrests", func(ctx context.Context, c *soda.Client) (soda.Table, error) {
				tbl, err := arrests.Fetch(ctx, c, arrests.Options{
					Common:   common,
					Beats:    beats,
					Premises: premises,
				})
				if err != nil {
					return nil, err
				}
				if f.clean {
					clean.Clean(tbl, cleanOptions(cmd, arrests.Descriptor))
				}
				return tbl, nil
			})
		},
	}
	addCommonFlags(cmd, &f)
	cmd.Flags().StringSliceVar(&beats, "beat", nil, "filter by arresting beat")
	cmd.Flags().StringSliceVar(&premises, "premises", nil, "filter by arrest premises")
	return cmd
}

func newFetchChargesCmd() *cobra.Command {
	var (
		f          fetchFlags
		severities []string
		penalCodes []string
	)
	cmd := &cobra.Command{
		Use:   "charges",
		Short: "Fetch arrest charges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, err := f.common(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			return runFetch(cmd, f, "charges", func(ctx context.Context, c *soda.Client) (soda.Table, error) {
				tbl, err := charges.Fetch(ctx, c, charges.Options{
					Common:     common,
					Severities: severities,
					PenalCodes: penalCodes,
				})
				if err != nil {
					return nil, err
				}
				if f.clean {
					clean.Clean(tbl, cleanOptions(cmd, charges.Descriptor))
				}
				return tbl, nil
			})
		},
	}
	addCommonFlags(cmd, &f)
	cmd.Flags().StringSliceVar(&severities, "severity", nil, "filter by charge severity")
	cmd.Flags().StringSliceVar(&penalCodes, "penal-code", nil, "filter by penal code")
	return cmd
}

func newFetchShootingsCmd() *cobra.Command {
	var (
		f            fetchFlags
		dispositions []string
		weapons      []string
	)
	cmd := &cobra.Command{
		Use:   "shootings",
		Short: "Fetch officer-involved shootings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, err := f.common(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			return runFetch(cmd, f, "shootings", func(ctx context.Context, c *soda.Client) (soda.Table, error) {
				tbl, err := shootings.Fetch(ctx, c, shootings.Options{
					Common:                common,
					GrandJuryDispositions: dispositions,
					SuspectWeapons:        weapons,
				})
				if err != nil {
					return nil, err
				}
				if f.clean {
					clean.Clean(tbl, cleanOptions(cmd, shootings.Descriptor))
				}
				return tbl, nil
			})
		},
	}
	addCommonFlags(cmd, &f)
	cmd.Flags().StringSliceVar(&dispositions, "disposition", nil, "filter by grand jury disposition")
	cmd.Flags().StringSliceVar(&weapons, "weapon", nil, "filter by suspect weapon")
	return cmd
}

func newFetchUseOfForceCmd() *cobra.Command {
	var (
		f            fetchFlags
		year         int
		serviceTypes []string
		divisions    []string
	)
	cmd := &cobra.Command{
		Use:   "useofforce",
		Short: "Fetch response-to-resistance records for one year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, err := f.common(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			return runFetch(cmd, f, fmt.Sprintf("useofforce %d", year), func(ctx context.Context, c *soda.Client) (soda.Table, error) {
				tbl, err := useofforce.Fetch(ctx, c, useofforce.Options{
					Common:       common,
					Year:         year,
					ServiceTypes: serviceTypes,
					Divisions:    divisions,
				})
				if err != nil {
					return nil, err
				}
				if f.clean {
					ds, err := useofforce.Descriptor(year)
					if err != nil {
						return nil, err
					}
					opts := cleanOptions(cmd, ds)
					clean.Clean(tbl, opts)
					clean.StandardizeDivision(tbl, "division", opts)
				}
				return tbl, nil
			})
		},
	}
	addCommonFlags(cmd, &f)
	cmd.Flags().IntVar(&year, "year", useofforce.LastYear, "dataset year (2017-2020)")
	cmd.Flags().StringSliceVar(&serviceTypes, "service-type", nil, "filter by service type")
	cmd.Flags().StringSliceVar(&divisions, "division", nil, "filter by patrol division")
	return cmd
}
