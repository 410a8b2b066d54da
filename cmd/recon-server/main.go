package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/audit-register-recon/pkg/app"
	"github.com/chainsafe/audit-register-recon/pkg/app/api"
	"github.com/chainsafe/audit-register-recon/pkg/config"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	os.Exit(app.Main("recon-server", api.NewServer(cfg), os.Stderr))
}
