package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

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
	configPath := flag.String("config", "server.yaml", "Path to server credential config file")
	listenAddr := flag.String("listen", ":8443", "Address to listen on")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("tlscreds-example-server %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	log.Printf("tlscreds example server (version %s)", version)
	log.Printf("Using config: %s", *configPath)

	creds, err := tlscreds.LoadServerCredentials(*configPath)
	if err != nil {
		log.Fatalf("failed to load server credentials: %v", err)
	}
	defer creds.Release()

	connector, err := creds.NewSecurityConnector()
	if err != nil {
		log.Fatalf("failed to create security connector: %v", err)
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Printf("write error: %v", err)
		}
	})

	r.Get("/time", func(w http.ResponseWriter, req *http.Request) {
		if _, err := fmt.Fprintf(w, "Server time: %s\n", time.Now().Format(time.RFC3339)); err != nil {
			log.Printf("write error: %v", err)
		}
	})

	listener, err := tls.Listen("tcp", *listenAddr, connector.ServerTLSConfig())
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", *listenAddr, err)
	}

	log.Printf("Listening on %s", *listenAddr)
	if err := http.Serve(listener, r); err != nil {
		log.Fatal(err)
	}
}
