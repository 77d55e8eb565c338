// Package artifact renders the release outputs: the properties manifest
// consumed by follow-on release tooling and the signed attestation embedded
// in annotated tags.
package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/odvcencio/relver/pkg/release"
)

// WriteReleaseProperties atomically writes the bundle as a properties
// manifest at path. Keys are emitted sorted so repeated passes over the same
// bundle produce byte-identical files.
func WriteReleaseProperties(path string, b release.Bundle) error {
	props := map[string]string{
		"project.release":     b.Release,
		"project.development": b.Development,
		"scm.tag":             b.SCMTag,
		"version.major":       strconv.Itoa(b.Major),
		"version.minor":       strconv.Itoa(b.Minor),
		"version.patch":       strconv.Itoa(b.Patch),
	}
	if b.Metadata != "" {
		props["build.metadata"] = b.Metadata
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&buf, "%s=%s\n", k, props[k])
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".properties-tmp-*")
	if err != nil {
		return fmt.Errorf("write properties: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write properties: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write properties: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write properties: rename: %w", err)
	}
	return nil
}
