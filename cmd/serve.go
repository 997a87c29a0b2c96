package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/LacunaOmnibus/Chat-Envolve/internal/server"
	"github.com/LacunaOmnibus/Chat-Envolve/pkg/envolve"
)

// Variables to hold flag values
var (
	srvPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	signer *envolve.Signer
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	registry := prometheus.NewRegistry()
	handler := server.Handler(p.signer, registry)

	addr := fmt.Sprintf(":%s", srvPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	log.Printf("Envolve signing helper listening on %s (site %s)", addr, p.signer.SiteID)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COMMAND ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a signing helper service for hosting web apps",
	Long: `Starts a long-running HTTP server that signs commands on demand, so a
hosting web app can fetch fresh command strings and embed snippets per
request. Exposes /command, /embed, and Prometheus /metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Build the signer up front so a bad key fails before install/run.
		signer := loadSigner()

		// 2. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "envolve-signer",
			DisplayName: "Envolve Chat Signing Helper",
			Description: "Signs Envolve chat login/logout commands over HTTP",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"serve",
				"--port", srvPort,
			},
		}
		if apiKeyFlag != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--api-key", apiKeyFlag)
		}
		if cfgFile != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--config", cfgFile)
		}

		prg := &program{signer: signer}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when run interactively
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&srvPort, "port", "8087", "Port to listen on")
	serveCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
