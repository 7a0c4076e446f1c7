package main

import (
	"net"
	"os"
	"os/signal"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/the-lightning-land/netwatchd/api"
	"github.com/the-lightning-land/netwatchd/connectivity"
	"github.com/the-lightning-land/netwatchd/netman"
	"github.com/the-lightning-land/netwatchd/statedb"
)

var (
	// Commit stores the current commit hash of this build. This should be set using -ldflags during compilation.
	Commit string
	// Version stores the version string of this build. This should be set using -ldflags during compilation.
	Version string
	// Date stores the date of this build. This should be set using -ldflags during compilation.
	Date string
)

// netwatchdMain is the true entry point for netwatchd. This is required since defers
// created in the top-level scope of a main method aren't executed if os.Exit() is called.
func netwatchdMain() error {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	// Load CLI configuration and defaults
	cfg, err := loadConfig()
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		return nil
	} else if err != nil {
		return errors.Errorf("Failed parsing arguments: %v", err)
	}

	// Set logger into debug mode if called with --debug
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
		log.Info("Setting debug mode.")
	}

	// Print version of the daemon
	log.Infof("Version %s (commit %s)", Version, Commit)
	log.Infof("Built on %s", Date)

	// Stop here if only version was requested
	if cfg.ShowVersion {
		return nil
	}

	// netwatch.db persistently stores all observed connectivity transitions
	db, err := statedb.Open(cfg.DataDir)
	if err != nil {
		return errors.Errorf("Could not open netwatch.db: %v", err)
	}

	log.Info("Opened netwatch.db")

	defer func() {
		err := db.Close()
		if err != nil {
			log.Errorf("Could not close netwatch.db: %v", err)
		} else {
			log.Info("Closed netwatch.db.")
		}
	}()

	// The transport that feeds the connectivity watcher
	var transport connectivity.Transport

	switch cfg.Net {
	case "networkmanager":
		nm := netman.New()

		err = nm.Start()
		if err != nil {
			return errors.Errorf("Could not connect to the system bus: %v", err)
		}

		defer func() {
			err := nm.Stop()
			if err != nil {
				log.Errorf("Could not properly close the bus connection: %v", err)
			} else {
				log.Info("Closed bus connection.")
			}
		}()

		transport = nm

		log.Info("Created NetworkManager transport.")
	case "mock":
		mock := connectivity.NewMockTransport(netman.StateDisconnected)

		// flip the state periodically so the daemon has something to report
		go func() {
			connected := false

			for range time.Tick(30 * time.Second) {
				connected = !connected

				if connected {
					mock.SetState(netman.StateConnectedGlobal)
				} else {
					mock.SetState(netman.StateDisconnected)
				}
			}
		}()

		transport = mock

		log.Info("Created a mock transport.")
	default:
		return errors.Errorf("Unknown net type %v", cfg.Net)
	}

	watcher := connectivity.New(&connectivity.Config{
		Transport: transport,
		Logger:    log.New().WithField("system", "connectivity"),
	})

	log.Info("Created connectivity watcher.")

	a := api.New(&api.Config{
		DB:  db,
		Log: log.New().WithField("system", "api"),
	})

	a.SetWatcher(watcher)

	log.Info("Created API.")

	registration := watcher.AddListener(func(connected bool) {
		log.Infof("Connectivity changed to %v", connected)

		transition := &statedb.Transition{
			Connected: connected,
			Time:      time.Now(),
		}

		err := db.RecordTransition(transition)
		if err != nil {
			log.Errorf("Could not record transition: %v", err)
		}

		a.PublishTransition(transition)
	})

	defer registration.Cancel()

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return errors.Errorf("Could not listen on %v: %v", cfg.Listen, err)
	}

	go func() {
		log.Infof("Serving API on %v", cfg.Listen)

		err := a.Serve(lis)
		if err != nil {
			log.Errorf("Could not serve api: %v", err)
		}
	}()

	// Handle interrupt signals correctly
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	sig := <-signals

	log.Info(sig)
	log.Info("Received an interrupt, shutting down...")

	err = lis.Close()
	if err != nil {
		log.Errorf("Could not close listener: %v", err)
	}

	// finish with no error
	return nil
}

func main() {
	// Call the "real" main in a nested manner so the defers will properly
	// be executed in the case of a graceful shutdown.
	if err := netwatchdMain(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		} else {
			log.WithError(err).Println("Failed running netwatchd.")
		}
		os.Exit(1)
	}
}
