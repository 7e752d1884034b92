package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/sufield/tlscreds"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	configPath := flag.String("config", "channel.yaml", "Path to channel credential config file")
	target := flag.String("target", "localhost:8443", "Server to connect to")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("tlscreds-example-client %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	log.Printf("tlscreds example client (version %s)", version)

	creds, err := tlscreds.LoadChannelCredentials(*configPath)
	if err != nil {
		log.Fatalf("failed to load channel credentials: %v", err)
	}
	defer creds.Release()

	connector, _, err := creds.NewSecurityConnector(nil, *target, nil)
	if err != nil {
		log.Fatalf("failed to create security connector: %v", err)
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: connector.ClientTLSConfig(),
		},
	}

	resp, err := client.Get("https://" + *target + "/time")
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("failed to read response: %v", err)
	}
	fmt.Print(string(body))
}
