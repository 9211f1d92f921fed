package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:port
//	-c/-config json file path with configs
//	-crm-url upstream CRM API base URL
//	-crm-module credential module name
//	-token-issuer token issuer name
//	-token-duration session token duration (e.g., "1h", "30m")
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-log-level zerolog level name
//
// Secrets are only accepted from the environment or the JSON file.
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress  NetAddress
		jsonConfigPath string
		crmURL         string
		crmModule      string
		tokenIssuer    string
		tokenDuration  time.Duration
		requestTimeout time.Duration
		logLevel       string
	)

	fs := flag.NewFlagSet("crm-gateway", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&crmURL, "crm-url", "", "Upstream CRM API base URL")
	fs.StringVar(&crmModule, "crm-module", "", "Credential module name")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Session token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			LogLevel:      logLevel,
		},
		CRM: CRM{
			APIURL: crmURL,
			Module: crmModule,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form [host]:port and populates the NetAddress.
// An empty host listens on all interfaces; other hosts must be "localhost"
// or an IP address.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be within 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
