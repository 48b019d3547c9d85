// Package config loads console client settings from a yml file and the
// environment, and writes session keys back to that file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// authKeyField is the file key holding the console session key.
const authKeyField = "auth_key"

// keys lists every setting that can come from the environment.
var keys = []string{
	"console_url",
	"billing_url",
	"billing_token",
	authKeyField,
	"timeout",
	"retry_max",
	"retry_wait_min",
	"retry_wait_max",
	"debug",
	"user_agent",
	"fetch_status_on_init",
}

// DefaultPath returns ~/.console/config.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".console", constants.DefaultConfigName+"."+constants.DefaultConfigType), nil
}

// Load reads path (optional, yml) and overlays CONSOLE_* environment
// variables, e.g. CONSOLE_CONSOLE_URL or CONSOLE_TIMEOUT=30s. A missing file
// is not an error as long as a console URL ends up configured.
func Load(path string) (*console.Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(constants.DefaultConfigType)
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		err := v.BindEnv(key)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		err := v.ReadInConfig()
		if err != nil && !isMissing(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg console.Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.ConsoleURL == "" {
		return nil, constants.ErrNoConsoleURL
	}

	return &cfg, nil
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// FilePersister writes console session keys into a yml config file, keeping
// every other setting in it.
type FilePersister struct {
	mutex sync.Mutex
	path  string
}

// NewFilePersister creates a persister for path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// SaveAuthKey implements console.SessionPersister. An empty key removes the
// auth_key entry.
func (p *FilePersister) SaveAuthKey(authKey string) error {
	if p.path == "" {
		return constants.ErrConfigPathRequired
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	settings := map[string]interface{}{}

	// #nosec G304 -- the path is chosen by the caller that owns the config
	data, err := os.ReadFile(p.path)

	switch {
	case err == nil:
		err = yaml.Unmarshal(data, &settings)
		if err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}

		if settings == nil {
			settings = map[string]interface{}{}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if authKey == "" {
		delete(settings, authKeyField)
	} else {
		settings[authKeyField] = authKey
	}

	data, err = yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(p.path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	err = os.WriteFile(p.path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
