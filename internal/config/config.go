package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr      string
		StaticDir string
	}
	Database struct {
		Path string
	}
	Auth struct {
		TokenSecret     string
		HashSecret      string
		TokenTTLMinutes int
	}
	Log struct {
		Level int
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
// The historical variable names (SECRET_AUTH_KEY, SECRET_ENC_KEY, LOG_LEVEL,
// PORT) are honored alongside the ACCOUNT_* forms.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("ACCOUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("server.staticdir", "public")
	v.SetDefault("database.path", "data/accounts.db")
	v.SetDefault("auth.tokensecret", "default-auth-secret")
	v.SetDefault("auth.hashsecret", "default-secret")
	v.SetDefault("auth.tokenttlminutes", 60)
	v.SetDefault("log.level", 4)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "account-service")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	_ = v.BindEnv("auth.tokensecret", "ACCOUNT_AUTH_TOKENSECRET", "SECRET_AUTH_KEY")
	_ = v.BindEnv("auth.hashsecret", "ACCOUNT_AUTH_HASHSECRET", "SECRET_ENC_KEY")
	_ = v.BindEnv("log.level", "ACCOUNT_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("server.addr", "ACCOUNT_SERVER_ADDR", "PORT")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// a bare PORT value still needs a bind address
	if cfg.Server.Addr != "" && !strings.Contains(cfg.Server.Addr, ":") {
		cfg.Server.Addr = "0.0.0.0:" + cfg.Server.Addr
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
