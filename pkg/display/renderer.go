package display

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mbernath/releasedir/pkg/config"
	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/releases"
	"github.com/mbernath/releasedir/pkg/style"
	"github.com/mbernath/releasedir/pkg/ui"
)

// Renderer writes command output in one of the supported formats. The
// format must already be resolved; FormatAuto is the caller's problem.
type Renderer struct {
	writer io.Writer
	format ui.Format
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, format ui.Format) *Renderer {
	return &Renderer{writer: w, format: format}
}

// RenderResult writes an operation result. JSON output is exactly the
// result record; human formats get a structured report headed by the
// command name.
func (r *Renderer) RenderResult(command string, res *releases.Result, dryRun bool) error {
	if r.format == ui.FormatJSON {
		return r.renderJSON(res)
	}

	styled := r.format == ui.FormatTerminal
	var b strings.Builder

	b.WriteString(r.header(command, res.AbsolutePath, dryRun, styled))
	b.WriteString("\n")
	b.WriteString(r.line(1, "releases path: "+r.path(res.ReleasesPath, styled), styled))
	b.WriteString("\n")

	activeBy := activeSymlinks(res)

	if len(res.Releases) > 0 {
		b.WriteString(r.line(1, fmt.Sprintf("releases (%d):", len(res.Releases)), styled))
		b.WriteString("\n")
		for _, name := range res.Releases {
			b.WriteString(r.releaseLine(name, activeBy[name], styled))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(r.line(1, "releases: none", styled))
		b.WriteString("\n")
	}

	if len(res.RemovedReleases) > 0 {
		verb := "removed"
		if dryRun {
			verb = "would remove"
		}
		b.WriteString(r.line(1, fmt.Sprintf("%s (%d):", verb, len(res.RemovedReleases)), styled))
		b.WriteString("\n")
		for _, name := range res.RemovedReleases {
			b.WriteString(r.removedLine(name, dryRun, styled))
			b.WriteString("\n")
		}
	}

	if len(res.SymlinkedFolders) > 0 {
		b.WriteString(r.line(1, "symlinks:", styled))
		b.WriteString("\n")
		for _, name := range symlinkNames(res) {
			b.WriteString(r.symlinkLine(name, res.SymlinkedFolders[name], styled))
			b.WriteString("\n")
		}
	}

	b.WriteString(r.changedLine(res.Changed, dryRun, styled))
	b.WriteString("\n")

	_, err := io.WriteString(r.writer, b.String())
	return err
}

// RenderTimestamp writes a generated timestamp.
func (r *Renderer) RenderTimestamp(stamp string) error {
	if r.format == ui.FormatJSON {
		return r.renderJSON(map[string]string{"timestamp": stamp})
	}
	_, err := fmt.Fprintln(r.writer, stamp)
	return err
}

// RenderConfig writes the effective configuration, as TOML for humans
// and as JSON for machines.
func (r *Renderer) RenderConfig(cfg *config.Config) error {
	if r.format == ui.FormatJSON {
		return r.renderJSON(cfg)
	}
	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, werr := r.writer.Write(out)
	return werr
}

// RenderMessage writes a one-line informational message.
func (r *Renderer) RenderMessage(msg string) error {
	if r.format == ui.FormatJSON {
		return r.renderJSON(map[string]string{"msg": msg})
	}
	_, err := fmt.Fprintln(r.writer, msg)
	return err
}

// RenderError writes a failed operation. The JSON shape mirrors the
// result contract so machine consumers can treat both uniformly.
func (r *Renderer) RenderError(err error) error {
	if r.format == ui.FormatJSON {
		return r.renderJSON(map[string]interface{}{
			"failed": true,
			"msg":    err.Error(),
			"code":   string(errors.GetErrorCode(err)),
		})
	}
	if r.format == ui.FormatTerminal {
		_, werr := fmt.Fprintf(r.writer, "%s %s\n",
			style.Get("Error").Render("✗"), err.Error())
		return werr
	}
	_, werr := fmt.Fprintf(r.writer, "Error: %s\n", err.Error())
	return werr
}

func (r *Renderer) renderJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode result as JSON")
	}
	out = append(out, '\n')
	_, werr := r.writer.Write(out)
	return werr
}

func (r *Renderer) header(command, path string, dryRun, styled bool) string {
	head := command + " " + path
	if styled {
		head = style.Get("Title").Render(command) + " " + r.path(path, true)
	}
	if dryRun {
		suffix := "(dry run)"
		if styled {
			suffix = style.Get("DryRun").Render(suffix)
		}
		head += " " + suffix
	}
	return head
}

func (r *Renderer) line(level int, s string, styled bool) string {
	if styled {
		return style.Indent(style.Get("Text").Render(s), level)
	}
	return strings.Repeat("  ", level) + s
}

func (r *Renderer) path(p string, styled bool) string {
	if styled {
		return style.Get("Path").Render(p)
	}
	return p
}

func (r *Renderer) releaseLine(name string, pointedAtBy []string, styled bool) string {
	suffix := ""
	if len(pointedAtBy) > 0 {
		suffix = " (" + strings.Join(pointedAtBy, ", ") + ")"
	}
	if !styled {
		return "    " + name + suffix
	}

	status := style.StatusKept
	if len(pointedAtBy) > 0 {
		status = style.StatusActive
	}
	line := style.StatusBadge(status) + " " + style.Get("Release").Render(name)
	if suffix != "" {
		line += style.Get("Muted").Render(suffix)
	}
	return style.Indent(line, 2)
}

func (r *Renderer) removedLine(name string, dryRun, styled bool) string {
	if !styled {
		return "    " + name
	}
	status := style.StatusRemoved
	if dryRun {
		status = style.StatusPlanned
	}
	return style.Indent(style.StatusBadge(status)+" "+style.Get("Removed").Render(name), 2)
}

func (r *Renderer) symlinkLine(name string, target *string, styled bool) string {
	if !styled {
		if target == nil {
			return "    " + name + ": (unresolved)"
		}
		return "    " + name + " -> " + *target
	}

	label := style.Get("Symlink").Render(name)
	if target == nil {
		return style.Indent(style.StatusBadge(style.StatusBroken)+" "+label+" "+
			style.Get("Warning").Render("(unresolved)"), 2)
	}
	return style.Indent(label+" "+style.Get("Muted").Render("->")+" "+
		style.Get("Path").Render(*target), 2)
}

func (r *Renderer) changedLine(changed, dryRun, styled bool) string {
	var s string
	switch {
	case changed && dryRun:
		s = "changed: yes (dry run)"
	case changed:
		s = "changed: yes"
	default:
		s = "changed: no"
	}
	if !styled {
		return "  " + s
	}
	name := "Muted"
	if changed {
		name = "Success"
	}
	return style.Indent(style.Get(name).Render(s), 1)
}

// activeSymlinks inverts the symlink map: for each release name, the
// watched symlinks resolving to it, in report order.
func activeSymlinks(res *releases.Result) map[string][]string {
	active := make(map[string][]string)
	for _, name := range symlinkNames(res) {
		target := res.SymlinkedFolders[name]
		if target == nil {
			continue
		}
		if filepath.Dir(*target) != res.ReleasesPath {
			continue
		}
		release := filepath.Base(*target)
		active[release] = append(active[release], name)
	}
	return active
}

// symlinkNames returns the watched names in stable order.
func symlinkNames(res *releases.Result) []string {
	names := make([]string, 0, len(res.SymlinkedFolders))
	for name := range res.SymlinkedFolders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
