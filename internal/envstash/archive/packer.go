// Package archive serializes a materialized environment into a portable
// tar.gz blob and restores it on another node, including the path fixup
// needed because the environment was built under a different absolute
// prefix.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"envstash/pkg/errors"
	"envstash/pkg/logger"
)

// metaDir holds envstash bookkeeping inside a materialized environment.
// prefixMarker records the absolute prefix the environment was built
// under; the unpacker uses it to relocate on restore.
const (
	metaDir      = ".envstash"
	prefixMarker = "prefix"
)

// WritePrefixMarker records the build prefix inside the environment so a
// later restore on a different node knows what to relocate from.
func WritePrefixMarker(prefix string) error {
	dir := filepath.Join(prefix, metaDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapArchiveError(prefix, "mark", err)
	}
	if err := os.WriteFile(filepath.Join(dir, prefixMarker), []byte(prefix+"\n"), 0644); err != nil {
		return errors.WrapArchiveError(prefix, "mark", err)
	}
	return nil
}

func readPrefixMarker(prefix string) (string, error) {
	data, err := os.ReadFile(filepath.Join(prefix, metaDir, prefixMarker))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Packer serializes a materialized environment into a tar.gz archive.
type Packer struct {
	logger *logger.Logger
}

func NewPacker() *Packer {
	return &Packer{
		logger: logger.New().WithField("component", "packer"),
	}
}

// Pack writes the environment rooted at prefix into a tar.gz file at dst.
// Entries are stored relative to prefix; symlinks are preserved as links.
func (p *Packer) Pack(prefix, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return errors.WrapArchiveError(dst, "pack", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	var files, bytes int64
	walkErr := filepath.Walk(prefix, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == prefix {
			return nil
		}

		rel, err := filepath.Rel(prefix, path)
		if err != nil {
			return err
		}

		var link string
		if info.Mode()&os.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return err
			}
		}

		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}
		hdr.Name = rel
		if info.IsDir() {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := io.Copy(tw, f)
		if err != nil {
			return err
		}
		files++
		bytes += n
		return nil
	})

	if walkErr != nil {
		tw.Close()
		gz.Close()
		return errors.WrapArchiveError(prefix, "pack", walkErr)
	}

	if err := tw.Close(); err != nil {
		gz.Close()
		return errors.WrapArchiveError(dst, "pack", err)
	}
	if err := gz.Close(); err != nil {
		return errors.WrapArchiveError(dst, "pack", err)
	}
	if err := out.Sync(); err != nil {
		return errors.WrapArchiveError(dst, "pack", err)
	}

	p.logger.Info("packed environment", "prefix", prefix, "files", files, "bytes", bytes)
	return nil
}

// sanitizeEntryName rejects tar entries that would escape the target
// prefix. Cached archives are written by envstash itself, but the shared
// cache is world-visible on many clusters; never trust entry paths.
func sanitizeEntryName(name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute entry path %q", name)
	}
	clean := filepath.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("entry path %q escapes target", name)
	}
	return clean, nil
}
