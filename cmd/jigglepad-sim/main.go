// Command jigglepad-sim serves a simulated jiggler appliance for local
// testing of jigglepad.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kataras/golog"

	"github.com/stigoleg/jigglepad/internal/simulator"
	"github.com/stigoleg/jigglepad/internal/util"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "Listen address")
	user := flag.String("user", "admin", "Basic Auth username (empty disables auth)")
	password := flag.String("password", "admin", "Basic Auth password")
	interval := flag.String("interval", "240", "Jiggler interval (e.g., \"30s\" or \"240\")")
	disabled := flag.Bool("disabled", false, "Start with the jiggler disabled")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error, disable")
	flag.Parse()

	golog.SetLevel(*logLevel)

	every, err := util.ParseInterval(*interval)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	settings := simulator.DefaultSettings()
	settings.MoveInterval = every
	settings.JigglerEnabled = !*disabled

	srv := simulator.NewServer(simulator.NewDevice(settings, nil), *user, *password)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, *addr); err != nil {
		golog.Fatalf("simulator: %v", err)
	}
}
