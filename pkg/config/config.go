package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/mbernath/releasedir/pkg/errors"
)

// Config holds the effective settings for one release tree, after all
// layers (embedded defaults, config file, environment, flags) have been
// merged.
type Config struct {
	// Path is the base path of the release tree. It has no default; it
	// must come from a config file, RELEASEDIR_PATH, or a flag.
	Path string `koanf:"path" toml:"path" json:"path"`

	// Prefix is prepended to timestamps to form release directory
	// names.
	Prefix string `koanf:"prefix" toml:"prefix" json:"prefix"`

	// Subfolder under Path that holds the release directories.
	Subfolder string `koanf:"subfolder" toml:"subfolder" json:"subfolder"`

	// Keep is how many releases a clean retains.
	Keep int `koanf:"keep" toml:"keep" json:"keep"`

	// KeepSymlinked protects releases watched symlinks point at from
	// cleaning.
	KeepSymlinked bool `koanf:"keep_symlinked" toml:"keep_symlinked" json:"keep_symlinked"`

	// Symlink is the name pointed at the release a create produces.
	Symlink string `koanf:"symlink" toml:"symlink" json:"symlink"`

	// SymlinkDirs are the watched symlink names under Path.
	SymlinkDirs []string `koanf:"symlink_dirs" toml:"symlink_dirs" json:"symlink_dirs"`

	Timestamp Timestamp `koanf:"timestamp" toml:"timestamp" json:"timestamp"`
}

// Timestamp holds the settings for generating release timestamps.
type Timestamp struct {
	// Format is a strftime format string.
	Format string `koanf:"format" toml:"format" json:"format"`

	// Timezone is an IANA timezone name.
	Timezone string `koanf:"timezone" toml:"timezone" json:"timezone"`
}

// Validate reports configuration values no operation can work with.
func (c *Config) Validate() error {
	if c.Keep < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "keep must be zero or positive, got %d", c.Keep)
	}
	if c.Timestamp.Format == "" {
		return errors.New(errors.ErrConfigInvalid, "timestamp format must not be empty")
	}
	return nil
}

// Marshal renders the config as TOML, for `config show`.
func (c *Config) Marshal() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot marshal configuration")
	}
	return out, nil
}
