package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read into the configuration
const EnvPrefix = "DOTSYNC_"

// LoadOptions controls Load
type LoadOptions struct {
	// HomeDir and ConfigDir override directory discovery
	HomeDir   string
	ConfigDir string

	// Overrides are dotted keys applied last, typically from CLI flags
	Overrides map[string]interface{}
}

// Load builds the configuration from all sources
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	p, err := paths.New(paths.Options{HomeDir: opts.HomeDir, ConfigDir: opts.ConfigDir})
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	configFile := p.ConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configFile)
		}
		logger.Debug().Str("path", configFile).Msg("Loaded user config")
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", configFile)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				syncModeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Paths = p

	logger.Debug().
		Str("home", p.HomeDir()).
		Str("config_dir", p.ConfigDir()).
		Str("manifest", cfg.ManifestPath()).
		Str("sync_dir", cfg.Sync.Dir).
		Str("mode", string(cfg.Sync.Mode)).
		Msg("Configuration loaded")

	return &cfg, nil
}

// envKey maps DOTSYNC_SYNC_DIR to sync.dir. DOTSYNC_CONFIG_DIR selects the
// directory the config is read from and is not itself a setting, so it maps
// to "" and the env provider drops it.
func envKey(s string) string {
	if s == paths.EnvConfigDir {
		return ""
	}
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// syncModeHookFunc parses and validates sync modes while decoding
func syncModeHookFunc() mapstructure.DecodeHookFuncType {
	modeType := reflect.TypeOf(types.SyncMode(""))
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != modeType {
			return data, nil
		}
		mode, err := types.ParseSyncMode(reflect.ValueOf(data).String())
		if err != nil {
			return nil, fmt.Errorf("sync.mode: %w", err)
		}
		return mode, nil
	}
}
