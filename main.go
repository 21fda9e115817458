package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"crowdsense.klederson.com/internal/app"
	"crowdsense.klederson.com/internal/bluetooth"
	"crowdsense.klederson.com/internal/buslink"
	"crowdsense.klederson.com/internal/config"
	"crowdsense.klederson.com/internal/indicator"
	"crowdsense.klederson.com/internal/node"
	"crowdsense.klederson.com/internal/presence"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagDemo    bool
	flagTUI     bool
	flagVerbose bool
	flagPort    string
	flagBaud    int
	flagWindowS int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crowdsense",
		Short: "Crowdsense - BLE presence-sensing node with density classification",
		Long: `Crowdsense repeatedly scans for nearby BLE advertisers, classifies the
surrounding crowd density from signal-strength counts, and keeps a one-byte
actuation command current for a downstream controller polling over a serial
peripheral link.

Requires sudo or CAP_NET_ADMIN capability for real Bluetooth scanning.
Use --demo flag for a simulated crowd without Bluetooth hardware.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file (optional)")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run with a simulated crowd (no Bluetooth required)")
	rootCmd.Flags().BoolVar(&flagTUI, "tui", false, "Run the live terminal monitor")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "Serial device for the bus link (e.g. /dev/ttyUSB0)")
	rootCmd.Flags().IntVar(&flagBaud, "baud", 0, "Bus link baud rate (overrides config)")
	rootCmd.Flags().IntVar(&flagWindowS, "window", 0, "Scan window in seconds (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flagPort != "" {
		cfg.Serial.Device = flagPort
	}
	if flagBaud > 0 {
		cfg.Serial.BaudRate = flagBaud
	}
	if flagWindowS > 0 {
		cfg.ScanWindowS = flagWindowS
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	allow := presence.NewAllowList(cfg.AllowList)
	acc := presence.NewAccumulator(allow, int16(cfg.RSSIThreshold), int16(cfg.FootstepThreshold))
	cell := presence.NewCommandCell()

	var scanner bluetooth.WindowScanner
	source := "hci0"
	if flagDemo {
		scanner = bluetooth.NewDemoScanner()
		source = "demo"
	} else {
		scanner = bluetooth.NewBLEScanner()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The responder runs regardless of cycle progress: polls arriving
	// before the first completed cycle are answered with the seeded stop
	// command.
	respErr := make(chan error, 1)
	if cfg.Serial.Device != "" {
		port, err := buslink.Open(cfg.Serial.Device, buslink.Mode{BaudRate: cfg.Serial.BaudRate})
		if err != nil {
			return err
		}
		responder := buslink.NewResponder(port, cell, slog.Default())
		go func() {
			respErr <- responder.Serve(ctx)
		}()
		slog.Info("buslink: serving", "device", cfg.Serial.Device, "baud", cfg.Serial.BaudRate)
	} else {
		slog.Warn("buslink: no serial device configured, bus link disabled")
	}

	if flagTUI {
		return runMonitor(scanner, acc, cell, allow, cfg, source)
	}

	var ind indicator.Indicator = indicator.Log{}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		ind = indicator.NewTerminal()
	}

	n := node.New(scanner, acc, cell, ind, cfg.ScanWindow(), slog.Default())

	nodeErr := make(chan error, 1)
	go func() {
		nodeErr <- n.Run(ctx)
	}()

	select {
	case err := <-nodeErr:
		if err != nil && ctx.Err() == nil {
			return err
		}
	case err := <-respErr:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("bus responder failed: %w", err)
		}
	case <-ctx.Done():
	}
	return nil
}

func runMonitor(scanner bluetooth.WindowScanner, acc *presence.Accumulator,
	cell *presence.CommandCell, allow *presence.AllowList,
	cfg *config.Config, source string) error {
	model := app.New(scanner, acc, cell, allow, cfg.ScanWindow(), cfg.FootstepThreshold, source)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	model.StartNode(p)

	_, err := p.Run()
	return err
}
