package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	iwdscan "github.com/dogeorg/iwdscan/pkg"
	"github.com/dogeorg/iwdscan/pkg/iwd"
	"github.com/dogeorg/iwdscan/pkg/system"
	network_wifi "github.com/dogeorg/iwdscan/pkg/system/network/wifi"
)

// Replaced in tests.
var (
	dialIWD        = iwd.Dial
	getUnitState   = system.GetUnitState
	listInterfaces network_wifi.InterfaceSource
)

var (
	configPath  string
	busFlag     string
	serviceFlag string
	timeoutFlag time.Duration
	skipInvalid bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "iwdscan",
	Short: "List the wireless networks iwd can see, best first",
	Long: `iwdscan asks the iwd daemon for a fresh scan on its wireless station and
prints the visible networks in the order iwd ranks them.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runList,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.StringVar(&busFlag, "bus", iwdscan.DefaultBus, `bus to use: "system", "session" or a D-Bus address`)
	f.StringVar(&serviceFlag, "service", iwd.Service, "D-Bus name of the iwd daemon")
	f.DurationVar(&timeoutFlag, "timeout", iwdscan.DefaultTimeout, "timeout for each D-Bus call")
	f.BoolVar(&skipInvalid, "skip-invalid", false, "skip objects iwd reports with unexpected properties")
	f.BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	rootCmd.Flags().BoolVarP(&longOutput, "long", "l", false, "print security, signal, connected and known columns")
}

// loadConfig reads the config file and applies the flags that were set on
// the command line on top of it.
func loadConfig(cmd *cobra.Command) (iwdscan.Config, error) {
	config, err := iwdscan.LoadConfig(configPath)
	if err != nil {
		return config, err
	}

	flags := cmd.Flags()
	if flags.Changed("bus") {
		config.Bus = busFlag
	}
	if flags.Changed("service") {
		config.Service = serviceFlag
	}
	if flags.Changed("timeout") {
		config.Timeout = timeoutFlag
	}
	if flags.Changed("skip-invalid") {
		config.SkipInvalid = skipInvalid
	}
	if flags.Changed("verbose") {
		config.Verbose = verbose
	}

	return config, config.Validate()
}

func setup(cmd *cobra.Command) (iwdscan.Config, *logrus.Logger, network_wifi.IWDScanner, error) {
	config, err := loadConfig(cmd)
	log := iwdscan.NewLogger(cmd.ErrOrStderr(), config.Verbose)
	if err != nil {
		return config, log, network_wifi.IWDScanner{}, err
	}

	scanner := network_wifi.NewWifiScanner(config, log)
	scanner.Dial = dialIWD
	scanner.Interfaces = listInterfaces
	return config, log, scanner, nil
}

// explainFailure logs what systemd knows about the iwd unit. It never
// changes the outcome of the run.
func explainFailure(config iwdscan.Config, log logrus.FieldLogger) {
	if config.Unit == "" {
		return
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = iwdscan.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	state, err := getUnitState(ctx, config.Unit)
	if err != nil {
		log.WithError(err).Debug("Could not query systemd")
		return
	}

	if state.Running() {
		log.Debug(state.String())
		return
	}
	log.Error(state.String())
}
