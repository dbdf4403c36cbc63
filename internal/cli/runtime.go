package cli

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mbernath/releasedir/pkg/config"
	"github.com/mbernath/releasedir/pkg/display"
	"github.com/mbernath/releasedir/pkg/style"
	"github.com/mbernath/releasedir/pkg/ui"
)

// ErrReported marks an error the display layer has already rendered.
// The entry point only needs the non-zero exit for it.
var ErrReported = stderrors.New("error already reported")

// runtime carries what a command run needs: the merged configuration,
// the resolved output format and a renderer bound to stdout.
type runtime struct {
	cfg      *config.Config
	format   ui.Format
	dryRun   bool
	renderer *display.Renderer
	out      io.Writer
	errOut   io.Writer
}

// newRuntime resolves the output format, applies a theme override if
// given, and loads the configuration with changed flags layered on
// top. Errors after the format is known are rendered here and come
// back as ErrReported.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	flags := cmd.Flags()

	formatName, _ := flags.GetString("format")
	format, err := ui.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	format = format.Resolve(os.Stdout)
	if noColor, _ := flags.GetBool("no-color"); noColor && format == ui.FormatTerminal {
		format = ui.FormatText
	}

	rt := &runtime{
		format: format,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
	rt.renderer = display.NewRenderer(rt.out, format)
	rt.dryRun, _ = flags.GetBool("dry-run")

	if theme, _ := flags.GetString("theme"); theme != "" {
		if err := style.LoadStyles(theme); err != nil {
			return nil, rt.fail(err)
		}
	}

	loadOpts := config.LoadOptions{
		Overrides: overridesFromFlags(cmd),
	}
	loadOpts.File, _ = flags.GetString("config")
	if path, _ := flags.GetString("path"); path != "" {
		// A tree named on the command line may carry its own config
		// file, so probe it first.
		loadOpts.SearchDirs = append([]string{path}, config.DefaultSearchDirs()...)
	}

	cfg, err := config.Load(loadOpts)
	if err != nil {
		return nil, rt.fail(err)
	}
	rt.cfg = cfg
	return rt, nil
}

// fail renders err exactly once. Human formats go to stderr; JSON goes
// to stdout, where machine consumers expect a single record whether
// the run worked or not.
func (rt *runtime) fail(err error) error {
	w := rt.errOut
	if rt.format == ui.FormatJSON {
		w = rt.out
	}
	if renderErr := display.NewRenderer(w, rt.format).RenderError(err); renderErr != nil {
		return err
	}
	return ErrReported
}

// watchedNames returns the configured watched symlink names with the
// symlink-to-set merged in, so a configured symlink is resolved and
// protected by every command, not only by create.
func watchedNames(cfg *config.Config) []string {
	names := cfg.SymlinkDirs
	if cfg.Symlink == "" {
		return names
	}
	for _, name := range names {
		if name == cfg.Symlink {
			return names
		}
	}
	return append(append([]string{}, names...), cfg.Symlink)
}

// overridesFromFlags lifts flags the user actually set into config
// overrides, keyed by koanf path. Unset flags never shadow file or
// environment values.
func overridesFromFlags(cmd *cobra.Command) map[string]interface{} {
	flags := cmd.Flags()
	overrides := map[string]interface{}{}

	changed := func(name string) *pflag.Flag {
		if f := flags.Lookup(name); f != nil && f.Changed {
			return f
		}
		return nil
	}
	stringFlag := func(name, key string) {
		if changed(name) != nil {
			v, _ := flags.GetString(name)
			overrides[key] = v
		}
	}
	intFlag := func(name, key string) {
		if changed(name) != nil {
			v, _ := flags.GetInt(name)
			overrides[key] = v
		}
	}
	boolFlag := func(name, key string) {
		if changed(name) != nil {
			v, _ := flags.GetBool(name)
			overrides[key] = v
		}
	}
	sliceFlag := func(name, key string) {
		if changed(name) != nil {
			v, _ := flags.GetStringSlice(name)
			overrides[key] = v
		}
	}

	stringFlag("path", "path")
	stringFlag("prefix", "prefix")
	stringFlag("subfolder", "subfolder")
	sliceFlag("symlinks", "symlink_dirs")
	stringFlag("symlink", "symlink")
	intFlag("keep", "keep")
	boolFlag("keep-symlinked", "keep_symlinked")
	stringFlag("layout", "timestamp.format")
	stringFlag("timezone", "timestamp.timezone")

	return overrides
}
