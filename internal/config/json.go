package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
// Durations are written as strings such as "15s" or "1h".
type StructuredJSONConfig struct {
	App struct {
		SessionSecret               string   `json:"session_secret"`
		TokenIssuer                 string   `json:"token_issuer"`
		TokenDuration               Duration `json:"token_duration"`
		PasswordChangeTokenDuration Duration `json:"password_change_token_duration"`
		DelayMin                    Duration `json:"delay_min"`
		DelayMax                    Duration `json:"delay_max"`
		BcryptCost                  int      `json:"bcrypt_cost"`
		LogLevel                    string   `json:"log_level"`
	} `json:"app,omitempty"`

	CRM struct {
		APIURL            string   `json:"api_url"`
		TokenURL          string   `json:"token_url"`
		ClientID          string   `json:"client_id"`
		ClientSecret      string   `json:"client_secret"`
		RefreshToken      string   `json:"refresh_token"`
		RequestTimeout    Duration `json:"request_timeout"`
		TokenSafetyMargin Duration `json:"token_safety_margin"`
		Module            string   `json:"module"`
		BreakerTimeout    Duration `json:"breaker_timeout"`
	} `json:"crm,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		AuthRateLimit     int      `json:"auth_rate_limit"`
		AuthRateWindow    Duration `json:"auth_rate_window"`
		ResetRateLimit    int      `json:"reset_rate_limit"`
		ResetRateWindow   Duration `json:"reset_rate_window"`
		GeneralRateLimit  int      `json:"general_rate_limit"`
		GeneralRateWindow Duration `json:"general_rate_window"`
	} `json:"server,omitempty"`

	Workers struct {
		TokenWarmupInterval Duration `json:"token_warmup_interval"`
	} `json:"workers,omitempty"`

	Notify struct {
		WebhookURL    string   `json:"webhook_url"`
		ResetLinkBase string   `json:"reset_link_base"`
		Timeout       Duration `json:"timeout"`
	} `json:"notify,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SessionSecret:               jsonCfg.App.SessionSecret,
			TokenIssuer:                 jsonCfg.App.TokenIssuer,
			TokenDuration:               time.Duration(jsonCfg.App.TokenDuration),
			PasswordChangeTokenDuration: time.Duration(jsonCfg.App.PasswordChangeTokenDuration),
			DelayMin:                    time.Duration(jsonCfg.App.DelayMin),
			DelayMax:                    time.Duration(jsonCfg.App.DelayMax),
			BcryptCost:                  jsonCfg.App.BcryptCost,
			LogLevel:                    jsonCfg.App.LogLevel,
		},
		CRM: CRM{
			APIURL:            jsonCfg.CRM.APIURL,
			TokenURL:          jsonCfg.CRM.TokenURL,
			ClientID:          jsonCfg.CRM.ClientID,
			ClientSecret:      jsonCfg.CRM.ClientSecret,
			RefreshToken:      jsonCfg.CRM.RefreshToken,
			RequestTimeout:    time.Duration(jsonCfg.CRM.RequestTimeout),
			TokenSafetyMargin: time.Duration(jsonCfg.CRM.TokenSafetyMargin),
			Module:            jsonCfg.CRM.Module,
			BreakerTimeout:    time.Duration(jsonCfg.CRM.BreakerTimeout),
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			AuthRateLimit:     jsonCfg.Server.AuthRateLimit,
			AuthRateWindow:    time.Duration(jsonCfg.Server.AuthRateWindow),
			ResetRateLimit:    jsonCfg.Server.ResetRateLimit,
			ResetRateWindow:   time.Duration(jsonCfg.Server.ResetRateWindow),
			GeneralRateLimit:  jsonCfg.Server.GeneralRateLimit,
			GeneralRateWindow: time.Duration(jsonCfg.Server.GeneralRateWindow),
		},
		Workers: Workers{
			TokenWarmupInterval: time.Duration(jsonCfg.Workers.TokenWarmupInterval),
		},
		Notify: Notify{
			WebhookURL:    jsonCfg.Notify.WebhookURL,
			ResetLinkBase: jsonCfg.Notify.ResetLinkBase,
			Timeout:       time.Duration(jsonCfg.Notify.Timeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
