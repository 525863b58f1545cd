package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/dial-descriptor/cmd/flags"
	"github.com/ruteri/dial-descriptor/devicesim"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "devicesim",
		Usage: "Serve a simulated DIAL device descriptor",
		Flags: append([]cli.Flag{
			flags.LogServiceFlagFn("devicesim"),
			flags.ListenAddrFlag,
			flags.AdvertiseApplicationURLFlag,
			flags.FriendlyNameFlag,
			flags.ModelNameFlag,
			flags.UDNFlag,
			flags.BehaviorFlag,
			flags.PprofFlag,
		}, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			behavior, err := devicesim.ParseBehavior(cCtx.String(flags.BehaviorFlag.Name))
			if err != nil {
				return err
			}

			logger := flags.SetupLogger(cCtx)
			cfg := flags.ConfigureDevice(cCtx, logger, behavior)

			srv, err := devicesim.New(cfg)
			if err != nil {
				return err
			}

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			srv.RunInBackground()
			logger.Info("Descriptor location", "url", "http://"+cfg.ListenAddr+devicesim.DescriptorPath)
			<-exit

			return srv.Shutdown()
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
