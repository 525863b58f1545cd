package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/dial-descriptor/cmd/flags"
	"github.com/ruteri/dial-descriptor/descriptor"
	"github.com/ruteri/dial-descriptor/interfaces"
	"github.com/ruteri/dial-descriptor/sweep"
	"github.com/urfave/cli/v2"
)

var flagLocation *cli.StringSliceFlag = &cli.StringSliceFlag{
	Name:    "location",
	Aliases: []string{"l"},
	Usage:   "device descriptor location, usually the LOCATION of an SSDP response (repeatable, positional arguments are accepted too)",
}

var flagConcurrency *cli.IntFlag = &cli.IntFlag{
	Name:  "concurrency",
	Value: sweep.DefaultConcurrency,
	Usage: "number of descriptors fetched in parallel",
}

// resolveOutput is the JSON line printed per location.
type resolveOutput struct {
	Location       string `json:"location"`
	Found          bool   `json:"found"`
	ApplicationURL string `json:"application_url,omitempty"`
	FriendlyName   string `json:"friendly_name,omitempty"`
	AbsenceReason  string `json:"absence_reason,omitempty"`
	Status         int    `json:"status,omitempty"`
	Error          string `json:"error,omitempty"`
}

func newResolveOutput(location string, res interfaces.Resolution, err error) resolveOutput {
	out := resolveOutput{
		Location: location,
		Found:    res.Found(),
		Status:   res.StatusCode,
	}
	switch {
	case err != nil:
		out.Error = err.Error()
	case res.Found():
		out.ApplicationURL = res.Descriptor.ApplicationResourceURL.String()
		out.FriendlyName = res.Descriptor.FriendlyName
	default:
		out.AbsenceReason = res.Reason.String()
	}
	return out
}

func locations(cCtx *cli.Context) ([]string, error) {
	locs := append(cCtx.StringSlice(flagLocation.Name), cCtx.Args().Slice()...)
	if len(locs) == 0 {
		return nil, errors.New("at least one descriptor location is required")
	}
	return locs, nil
}

func main() {
	commonFlags := append([]cli.Flag{
		flags.LogServiceFlagFn("dial-descriptor"),
		flags.TimeoutFlag,
		flags.ApplicationURLHeaderFlag,
		flagLocation,
	}, flags.CommonFlags...)

	app := &cli.App{
		Name:           "dial-descriptor",
		Usage:          "Resolve DIAL device descriptors",
		DefaultCommand: "resolve",
		Commands: []*cli.Command{
			{
				Name:      "resolve",
				Usage:     "fetch descriptors one by one and print them as JSON lines",
				ArgsUsage: "[location...]",
				Flags:     commonFlags,
				Action: func(cCtx *cli.Context) error {
					locs, err := locations(cCtx)
					if err != nil {
						return err
					}

					logger := flags.SetupLogger(cCtx)
					resolver := descriptor.NewResolver(flags.ConfigureResolver(cCtx), logger)
					enc := json.NewEncoder(os.Stdout)

					var failed error
					for _, loc := range locs {
						res, err := resolver.Resolve(cCtx.Context, loc)
						if encErr := enc.Encode(newResolveOutput(loc, res, err)); encErr != nil {
							return encErr
						}
						if err != nil && failed == nil {
							failed = fmt.Errorf("could not resolve %s: %w", loc, err)
						}
					}
					return failed
				},
			},
			{
				Name:      "sweep",
				Usage:     "fetch many descriptors in parallel, never failing on a single device",
				ArgsUsage: "[location...]",
				Flags:     append(commonFlags, flagConcurrency),
				Action: func(cCtx *cli.Context) error {
					locs, err := locations(cCtx)
					if err != nil {
						return err
					}

					logger := flags.SetupLogger(cCtx)
					resolver := descriptor.NewResolver(flags.ConfigureResolver(cCtx), logger)
					sweeper := sweep.NewSweeper(resolver, cCtx.Int(flagConcurrency.Name), logger)

					entries, err := sweeper.Run(cCtx.Context, locs)

					enc := json.NewEncoder(os.Stdout)
					for _, entry := range entries {
						if encErr := enc.Encode(newResolveOutput(entry.Location, entry.Resolution, entry.Err)); encErr != nil {
							return encErr
						}
					}
					return err
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
