package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fgeck/homelab-wol/internal/config"
	"github.com/fgeck/homelab-wol/internal/models"
	"github.com/fgeck/homelab-wol/internal/services/runner"
	"github.com/fgeck/homelab-wol/internal/wakefile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// wakeOptions holds the flags that shape a wakeup run.
type wakeOptions struct {
	host        string
	ipv6        bool
	port        uint16
	file        string
	waitMS      uint
	passwd      string
	metricsFile string
}

var wakeOpts wakeOptions

func addWakeFlags(f *pflag.FlagSet, opts *wakeOptions) {
	f.StringVarP(&opts.host, "host", "i", "", "destination for targets without one (default 255.255.255.255, ff02::1 with --ipv6)")
	f.BoolVarP(&opts.ipv6, "ipv6", "6", false, "resolve host names to IPv6 addresses only")
	f.Uint16VarP(&opts.port, "port", "p", models.DefaultPort, "port for targets without one")
	f.StringVarP(&opts.file, "file", "f", "", "read targets from a wakeup file ('-' for stdin)")
	f.UintVarP(&opts.waitMS, "wait", "w", 0, "milliseconds to wait between packets")
	f.StringVar(&opts.passwd, "passwd", "", "SecureON password for targets given as arguments")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
}

func runWake(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags(), wakeOpts, configFile)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	cli, err := cliTargets(args, wakeOpts.passwd)
	if err != nil {
		log.Error().Err(err).Msg("invalid argument")
		return err
	}

	if len(cli) == 0 && cfg.File == "" {
		log.Error().Msg("no targets given")
		return cmd.Help()
	}

	var fileTargets iter.Seq2[models.WakeupTarget, error]
	if cfg.File != "" {
		r, closeFn, err := openWakeFile(cfg.File)
		if err != nil {
			log.Error().Err(err).Str("file", cfg.File).Msg("failed to open wakeup file")
			return err
		}
		defer closeFn()
		fileTargets = wakefile.FromReader(r)
	}

	log.Debug().
		Str("host", cfg.Host).
		Uint16("port", cfg.Port).
		Bool("ipv6", cfg.PreferIPv6).
		Dur("wait", cfg.Wait).
		Str("file", cfg.File).
		Msg("configuration resolved")

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	runnerSvc := runner.New(log.Logger)
	if err := runnerSvc.Run(ctx, *cfg, concatTargets(cli, fileTargets)); err != nil {
		log.Error().Err(err).Msg("wakeup failed")
		return err
	}

	return nil
}

// resolveConfig merges the optional config file with the command line.
// Flags that were set explicitly win over the file.
func resolveConfig(flags *pflag.FlagSet, opts wakeOptions, path string) (*models.WakeConfig, error) {
	cfg := &models.WakeConfig{Port: models.DefaultPort}
	hostSet := false

	if path != "" {
		parser := config.NewParser()
		loaded, err := parser.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		hostSet = parser.IsSet("host")
	}

	if flags.Changed("ipv6") {
		cfg.PreferIPv6 = opts.ipv6
	}
	if flags.Changed("host") {
		cfg.Host = opts.host
		hostSet = true
	}
	if !hostSet {
		cfg.Host = config.DefaultHost(cfg.PreferIPv6)
	}
	if flags.Changed("port") {
		cfg.Port = opts.port
	}
	if flags.Changed("wait") {
		cfg.Wait = time.Duration(opts.waitMS) * time.Millisecond
	}
	if flags.Changed("file") {
		cfg.File = opts.file
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cliTargets parses hardware addresses given as arguments. The SecureON
// password, if any, applies to all of them.
func cliTargets(args []string, passwd string) ([]models.WakeupTarget, error) {
	var secureOn *models.SecureOn
	if passwd != "" {
		so, err := models.ParseSecureOn(passwd)
		if err != nil {
			return nil, fmt.Errorf("invalid SecureON password: %w", err)
		}
		secureOn = &so
	}

	targets := make([]models.WakeupTarget, 0, len(args))
	for _, arg := range args {
		mac, err := models.ParseMacAddress(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid hardware address %q: %w", arg, err)
		}
		target := models.NewWakeupTarget(mac)
		if secureOn != nil {
			target = target.WithSecureOn(*secureOn)
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// concatTargets yields the argument targets first, then those of the
// wakeup file.
func concatTargets(cli []models.WakeupTarget, file iter.Seq2[models.WakeupTarget, error]) iter.Seq2[models.WakeupTarget, error] {
	return func(yield func(models.WakeupTarget, error) bool) {
		for _, t := range cli {
			if !yield(t, nil) {
				return
			}
		}
		if file == nil {
			return
		}
		for t, err := range file {
			if !yield(t, err) {
				return
			}
		}
	}
}

func openWakeFile(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("wakeup file not found: %s", path)
		}
		return nil, nil, fmt.Errorf("opening wakeup file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
