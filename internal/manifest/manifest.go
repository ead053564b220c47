// internal/manifest/manifest.go
// Package manifest reads the application's dependency manifest and probes
// whether the isolated runtime can actually import each dependency. The
// bootstrapper guarantees an interpreter, not a dependency set; this package
// is the opportunistic re-check performed before launch.
package manifest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultDependencies is installed and checked when no manifest file exists.
// It mirrors the application's baseline requirements.
var DefaultDependencies = []Dependency{
	{Name: "torch"},
	{Name: "transformers"},
	{Name: "textual"},
	{Name: "rich"},
	{Name: "fastapi"},
	{Name: "uvicorn"},
	{Name: "aiohttp"},
	{Name: "requests"},
}

// importNames maps pip package names to their import names where the two
// differ. Anything absent from the map imports under its own (normalized)
// name.
var importNames = map[string]string{
	"scikit-learn":  "sklearn",
	"pyyaml":        "yaml",
	"pillow":        "PIL",
	"beautifulsoup": "bs4",
	"opencv-python": "cv2",
}

// Dependency is a single entry of the manifest.
type Dependency struct {
	// Name is the package name as the package manager knows it.
	Name string
	// Version is the pinned version, empty when unpinned.
	Version string
}

// String renders the dependency back in manifest form.
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "==" + d.Version
}

// ImportName returns the module name used to probe importability.
func (d Dependency) ImportName() string {
	key := strings.ToLower(d.Name)
	if mod, ok := importNames[key]; ok {
		return mod
	}
	// Import names never contain dashes; packages like typing-extensions
	// import with underscores.
	return strings.ReplaceAll(key, "-", "_")
}

// Parse reads a requirements-style manifest: one dependency per line, an
// optional ==version pin, #-comments and blank lines ignored.
func Parse(data []byte) ([]Dependency, error) {
	var deps []Dependency
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		name, version, _ := strings.Cut(line, "==")
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" {
			return nil, fmt.Errorf("manifest line %d: missing package name", i+1)
		}
		if strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("manifest line %d: malformed entry %q", i+1, name)
		}
		deps = append(deps, Dependency{Name: name, Version: version})
	}
	return deps, nil
}

// LoadFile parses the manifest at path. A missing file is not an error: the
// default dependency set is returned instead, matching installer behavior.
func LoadFile(path string) ([]Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return append([]Dependency(nil), DefaultDependencies...), nil
		}
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}
	return Parse(data)
}

// ProbeFunc reports whether the interpreter can import module. The default
// runs `interpreter -c "import <module>"` and treats a zero exit as success.
type ProbeFunc func(ctx context.Context, interpreter, module string) error

// defaultProbe shells out to the runtime interpreter.
func defaultProbe(ctx context.Context, interpreter, module string) error {
	cmd := exec.CommandContext(ctx, interpreter, "-c", "import "+module)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// Checker probes dependency importability inside an isolated runtime.
type Checker struct {
	// Interpreter is the runtime interpreter binary to probe with.
	Interpreter string
	// Probe overrides the import probe. Nil selects the default.
	Probe ProbeFunc
}

// Missing returns the subset of deps whose import probe fails, in manifest
// order. An empty result means the dependency set is importable.
func (c Checker) Missing(ctx context.Context, deps []Dependency) []Dependency {
	probe := c.Probe
	if probe == nil {
		probe = defaultProbe
	}
	var missing []Dependency
	for _, d := range deps {
		if err := probe(ctx, c.Interpreter, d.ImportName()); err != nil {
			missing = append(missing, d)
		}
	}
	return missing
}
