package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file source.
// Durations are accepted either as strings ("1h", "30s") or as nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		LogLevel      string   `json:"log_level"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		OpsAddress         string   `json:"ops_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		IgnoreForwardedFor bool     `json:"ignore_forwarded_for"`
	} `json:"server,omitempty"`

	Security struct {
		BodyLimit int64 `json:"body_limit"`
		CORS      struct {
			AllowedOrigins []string `json:"allowed_origins"`
		} `json:"cors,omitempty"`
		RateLimit struct {
			Disabled bool     `json:"disabled"`
			Max      int      `json:"max"`
			Window   Duration `json:"window"`
			Message  string   `json:"message"`
		} `json:"rate_limit,omitempty"`
		Session struct {
			Name    string `json:"name"`
			Signed  bool   `json:"signed"`
			Secure  bool   `json:"secure"`
			SignKey string `json:"sign_key"`
		} `json:"session,omitempty"`
	} `json:"security,omitempty"`

	Tracing struct {
		Enabled     bool    `json:"enabled"`
		Endpoint    string  `json:"endpoint"`
		Insecure    bool    `json:"insecure"`
		SampleRatio float64 `json:"sample_ratio"`
	} `json:"tracing,omitempty"`
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
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			LogLevel:      jsonCfg.App.LogLevel,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			OpsAddress:         jsonCfg.Server.OpsAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			IgnoreForwardedFor: jsonCfg.Server.IgnoreForwardedFor,
		},
		Security: Security{
			BodyLimit: jsonCfg.Security.BodyLimit,
			CORS: CORS{
				AllowedOrigins: jsonCfg.Security.CORS.AllowedOrigins,
			},
			RateLimit: RateLimit{
				Disabled: jsonCfg.Security.RateLimit.Disabled,
				Max:      jsonCfg.Security.RateLimit.Max,
				Window:   time.Duration(jsonCfg.Security.RateLimit.Window),
				Message:  jsonCfg.Security.RateLimit.Message,
			},
			Session: Session{
				Name:    jsonCfg.Security.Session.Name,
				Signed:  jsonCfg.Security.Session.Signed,
				Secure:  jsonCfg.Security.Session.Secure,
				SignKey: jsonCfg.Security.Session.SignKey,
			},
		},
		Tracing: Tracing{
			Enabled:     jsonCfg.Tracing.Enabled,
			Endpoint:    jsonCfg.Tracing.Endpoint,
			Insecure:    jsonCfg.Tracing.Insecure,
			SampleRatio: jsonCfg.Tracing.SampleRatio,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
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
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
