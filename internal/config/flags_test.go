package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{"empty address", NetAddress{}, ""},
		{"localhost with port", NetAddress{Host: "localhost", Port: 8080}, "localhost:8080"},
		{"IP address with port", NetAddress{Host: "127.0.0.1", Port: 9090}, "127.0.0.1:9090"},
		{"all interfaces", NetAddress{Port: 3001}, ":3001"},
		{"ipv6", NetAddress{Host: "::1", Port: 3001}, "[::1]:3001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"localhost", "localhost:8080", "localhost", 8080, false},
		{"ip", "0.0.0.0:3001", "0.0.0.0", 3001, false},
		{"port only", ":3001", "", 3001, false},
		{"missing port", "localhost", "", 0, true},
		{"non numeric port", "localhost:http", "", 0, true},
		{"zero port", "localhost:0", "", 0, true},
		{"port out of range", "localhost:70000", "", 0, true},
		{"hostname", "example.com:80", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, addr.Host)
			assert.Equal(t, tt.wantPort, addr.Port)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "localhost:9000",
		"-config", "/etc/crm-gateway.json",
		"-crm-url", "https://www.zohoapis.com/crm/v2",
		"-crm-module", "Staff",
		"-token-issuer", "intranet",
		"-token-duration", "45m",
		"-request-timeout", "10s",
		"-log-level", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "/etc/crm-gateway.json", cfg.JSONFilePath)
	assert.Equal(t, "https://www.zohoapis.com/crm/v2", cfg.CRM.APIURL)
	assert.Equal(t, "Staff", cfg.CRM.Module)
	assert.Equal(t, "intranet", cfg.App.TokenIssuer)
	assert.Equal(t, 45*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_Invalid(t *testing.T) {
	_, err := parseFlags([]string{"-a", "nope"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-token-duration", "forever"})
	assert.Error(t, err)
}
