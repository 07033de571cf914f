package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables that override settings
const EnvPrefix = "PROJMAN_"

// Store holds the merged settings and knows where user overrides live.
type Store struct {
	k        *koanf.Koanf
	userFile string
}

// Load merges, in increasing priority:
//  1. embedded defaults
//  2. the user config file, when present
//  3. PROJMAN_* environment variables naming a known setting
func Load(p types.Pather) (*Store, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	userFile := p.ConfigFile()
	if _, err := os.Stat(userFile); err == nil {
		if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", userFile)
		}
		logger.Debug().Str("path", userFile).Msg("Loaded user config")
	}

	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(s, v string) (string, interface{}) {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !IsKnownKey(key) {
			return "", nil
		}
		value, err := coerce(key, v)
		if err != nil {
			logger.Warn().Str("env", s).Err(err).Msg("Ignoring environment override")
			return "", nil
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	return &Store{k: k, userFile: userFile}, nil
}

// Get returns the raw value for key, or nil when unset
func (s *Store) Get(key string) interface{} {
	return s.k.Get(key)
}

// All returns every known setting with its current value
func (s *Store) All() map[string]interface{} {
	all := make(map[string]interface{}, len(keyKinds))
	for _, key := range Keys() {
		all[key] = s.k.Get(key)
	}
	return all
}

// Config decodes the merged settings
func (s *Store) Config() (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := s.k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// Set stores value under key in the user config file and in memory.
// The file is rewritten through a temp file so a crash never leaves it
// half-written.
func (s *Store) Set(key string, value interface{}) error {
	coerced, err := coerce(key, value)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid setting")
	}

	user := map[string]interface{}{}
	data, err := os.ReadFile(s.userFile)
	switch {
	case err == nil:
		if err := gotoml.Unmarshal(data, &user); err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse %s", s.userFile)
		}
	case !os.IsNotExist(err):
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", s.userFile)
	}

	user[key] = coerced
	out, err := gotoml.Marshal(user)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode settings")
	}

	if err := os.MkdirAll(filepath.Dir(s.userFile), 0755); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to create config directory")
	}
	tmp := s.userFile + ".tmp"
	if err := os.WriteFile(tmp, out, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", s.userFile)
	}
	if err := os.Rename(tmp, s.userFile); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", s.userFile)
	}

	if err := s.k.Load(confmap.Provider(map[string]interface{}{key: coerced}, "."), nil); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to apply setting")
	}

	logger := logging.GetLogger("config")
	logger.Info().Str("key", key).Interface("value", coerced).Msg("Setting updated")
	return nil
}

// UserFile returns the path Set writes to
func (s *Store) UserFile() string {
	return s.userFile
}
