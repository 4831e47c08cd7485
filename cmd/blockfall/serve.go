package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/logging"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
	"github.com/vovakirdan/blockfall/internal/web"
)

var (
	flagSSHAddr string
	flagWebAddr string
	flagHostKey string
	flagNoSSH   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over SSH and/or websockets",
	Long: `Start the network front ends. Every SSH connection and every websocket
gets its own independent game. All of them share one scores database.

SSH is on by default; the websocket server is on when enabled in the
config or when --web is given.

Host key handling:
  - If --host-key (or ssh.host_key_path) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.blockfall/host_key

Examples:
  blockfall serve                       # SSH on :23234
  blockfall serve --ssh :2222           # SSH on port 2222
  blockfall serve --web :8080           # SSH plus websockets on :8080
  blockfall serve --no-ssh --web :8080  # websockets only

Connect with:
  ssh localhost -p 23234
  ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagWebAddr, "web", "", "Websocket server address (host:port); enables the web server")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if flagNoSSH {
		cfg.SSH.Enabled = false
	}
	if flagWebAddr != "" {
		cfg.Web.Enabled = true
		cfg.Web.Address = flagWebAddr
	}
	if !cfg.SSH.Enabled && !cfg.Web.Enabled {
		return errors.New("nothing to serve: both ssh and web are disabled")
	}

	logger := logging.New("blockfall", cfg.Log.Level)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		// Continue without storage - games still work
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.SSH.Enabled {
		sshServer, err := tui.NewSSHServer(cfg, store, logging.New("blockfall-ssh", cfg.Log.Level))
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
		g.Go(func() error {
			return sshServer.ListenAndServe(gctx)
		})
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.SSH.Address))
	}

	if cfg.Web.Enabled {
		webServer := web.NewServer(cfg, store, logging.New("blockfall-web", cfg.Log.Level))
		g.Go(func() error {
			return webServer.ListenAndServe(gctx)
		})
		fmt.Printf("Browser clients: ws://localhost:%s/ws\n", portOf(cfg.Web.Address))
	}

	fmt.Println("Press Ctrl+C to stop")
	return g.Wait()
}

// portOf returns the port of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
