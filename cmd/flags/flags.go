package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/dial-descriptor/common"
	"github.com/ruteri/dial-descriptor/descriptor"
	"github.com/ruteri/dial-descriptor/devicesim"
	"github.com/ruteri/dial-descriptor/interfaces"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ConfigureResolver builds the descriptor resolver configuration from the
// resolver flags.
func ConfigureResolver(cCtx *cli.Context) *descriptor.Config {
	return &descriptor.Config{
		Timeout:              cCtx.Duration(TimeoutFlag.Name),
		ApplicationURLHeader: cCtx.String(ApplicationURLHeaderFlag.Name),
	}
}

func ConfigureDevice(cCtx *cli.Context, logger *slog.Logger, behavior devicesim.Behavior) *devicesim.Config {
	return &devicesim.Config{
		ListenAddr:               cCtx.String(ListenAddrFlag.Name),
		ApplicationURL:           cCtx.String(AdvertiseApplicationURLFlag.Name),
		FriendlyName:             cCtx.String(FriendlyNameFlag.Name),
		ModelName:                cCtx.String(ModelNameFlag.Name),
		UDN:                      cCtx.String(UDNFlag.Name),
		Behavior:                 behavior,
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		Log:                      logger,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

var LogJsonFlag = &cli.BoolFlag{
	Name:    "log-json",
	Value:   false,
	Usage:   "log in JSON format",
	EnvVars: []string{"LOG_JSON"},
}
var LogDebugFlag = &cli.BoolFlag{
	Name:    "log-debug",
	Value:   false,
	Usage:   "log debug messages",
	EnvVars: []string{"LOG_DEBUG"},
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var TimeoutFlag = &cli.DurationFlag{
	Name:    "timeout",
	Value:   descriptor.DefaultTimeout,
	Usage:   "per-device timeout for fetching the descriptor, 0 selects the default and a negative value disables it",
	EnvVars: []string{"DIAL_TIMEOUT"},
}
var ApplicationURLHeaderFlag = &cli.StringFlag{
	Name:  "application-url-header",
	Value: interfaces.ApplicationURLHeader,
	Usage: "response header carrying the application resource URL",
}

var ListenAddrFlag = &cli.StringFlag{
	Name:    "listen-addr",
	Value:   "127.0.0.1:8060",
	Usage:   "address to serve the simulated device on",
	EnvVars: []string{"DEVICESIM_LISTEN_ADDR"},
}
var AdvertiseApplicationURLFlag = &cli.StringFlag{
	Name:  "application-url",
	Usage: "fixed Application-URL to announce, derived from the request host if empty",
}
var FriendlyNameFlag = &cli.StringFlag{
	Name:  "friendly-name",
	Value: "Simulated DIAL Device",
	Usage: "friendlyName served in the device descriptor",
}
var ModelNameFlag = &cli.StringFlag{
	Name:  "model-name",
	Value: "devicesim",
	Usage: "modelName served in the device descriptor",
}
var UDNFlag = &cli.StringFlag{
	Name:  "udn",
	Usage: "device UUID, random if empty",
}
var BehaviorFlag = &cli.StringFlag{
	Name:  "behavior",
	Value: string(devicesim.BehaviorNormal),
	Usage: "descriptor behavior: normal, missing-header, not-found, malformed-xml, malformed-app-url, no-friendly-name",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
}
