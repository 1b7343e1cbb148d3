// insightd runs the MindCanvas insight service: it recomputes drawing
// metrics posted by clients and relays live metric streams to observers.
package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mcnet "MindCanvas/internal/net"
	"MindCanvas/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "insightd",
		Short:         "MindCanvas insight service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyze API and the live metrics relay",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve()
		},
	}
	cmd.Flags().String("addr", ":8090", "listen address")
	cmd.Flags().Bool("mdns", true, "advertise the service on the local network")

	viper.SetEnvPrefix("MINDCANVAS")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("mdns", cmd.Flags().Lookup("mdns"))

	return cmd
}

func serve() error {
	addr := viper.GetString("addr")

	if viper.GetBool("mdns") {
		port, err := portOf(addr)
		if err != nil {
			return err
		}
		mdnsServer, err := mcnet.Advertise(port)
		if err != nil {
			log.Printf("[INSIGHTD] mDNS advertising unavailable: %v", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	if ip, err := mcnet.GetOutgoingIP(); err == nil {
		log.Printf("[INSIGHTD] reachable at %s%s", ip, addr)
	}

	// No global read/write timeouts: /ws/live connections are long-lived.
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.New().Router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Printf("[INSIGHTD] listening on %s", addr)
	return httpServer.ListenAndServe()
}

func portOf(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("parse listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("parse listen port %q: %w", portStr, err)
	}
	return port, nil
}
