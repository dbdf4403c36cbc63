package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultConfigContent returns the embedded defaults file, which
// `config init` writes out as a starting point.
func DefaultConfigContent() string {
	return string(defaultConfig)
}

// DefaultFileName is the config file `config init --write` produces.
const DefaultFileName = ".releasedir.toml"

// configFileNames are probed in order in each search directory; the
// first hit wins.
var configFileNames = []string{DefaultFileName, "releasedir.toml"}

// EnvPrefix is the prefix of environment variables consulted during
// loading. After the prefix, a double underscore nests into a section:
// RELEASEDIR_KEEP=3, RELEASEDIR_TIMESTAMP__FORMAT=%Y%m%d.
const EnvPrefix = "RELEASEDIR_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// File forces a specific config file; loading fails if it cannot
	// be read. Empty means search.
	File string

	// SearchDirs are probed in order for a config file when File is
	// empty. Empty means the working directory followed by the user's
	// XDG config directory.
	SearchDirs []string

	// Overrides sit above every other layer, keyed by koanf path
	// ("keep", "timestamp.format"). The CLI feeds changed flags
	// through here.
	Overrides map[string]interface{}
}

// Load merges all configuration layers into a validated Config.
// Precedence, lowest to highest: embedded defaults, config file,
// RELEASEDIR_* environment variables, Overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	// 2. Config file
	path, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config file %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Flag overrides
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
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps RELEASEDIR_TIMESTAMP__FORMAT to timestamp.format. Single
// underscores stay, so RELEASEDIR_KEEP_SYMLINKED maps to
// keep_symlinked.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// DefaultSearchDirs returns the directories probed for a config file
// when the caller does not narrow the search: the working directory,
// then the user's XDG config directory.
func DefaultSearchDirs() []string {
	return []string{".", filepath.Join(xdg.ConfigHome, "releasedir")}
}

func findConfigFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}

	dirs := opts.SearchDirs
	if len(dirs) == 0 {
		dirs = DefaultSearchDirs()
	}
	for _, dir := range dirs {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", nil
}
