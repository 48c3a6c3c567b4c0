package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tabu-server/internal/server"
)

const releaseVersion = "1.0.0"

func main() {
	cfg := &server.Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func newCmd(cfg *server.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TABU")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "tabu-server",
		Short:         "Real-time multiplayer Taboo room server.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: TABU_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 0, "port to listen on, 0 defers to PORT env (env: TABU_PORT)")
	fs.DurationVar(&cfg.TickInterval, "tick-interval", 300*time.Millisecond, "turn clock tick interval (env: TABU_TICK_INTERVAL)")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "base URL used in QR join links (env: TABU_PUBLIC_URL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("tabu-server v{{.Version}}\n")

	return cmd
}

func run(cfg server.Config) error {
	customServer, httpServer := server.NewServer(cfg)

	done := make(chan bool, 1)
	go gracefulShutdown(customServer, httpServer, done)

	log.Printf("Server listening on %s", httpServer.Addr)
	err := httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
	return nil
}

func gracefulShutdown(customServer *server.Server, httpServer *http.Server, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutdown signal received, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := customServer.Shutdown(ctx); err != nil && err != context.DeadlineExceeded {
		log.Printf("Error during custom shutdown: %v", err)
	}

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server forced to shutdown with error: %v", err)
	}

	done <- true
}
