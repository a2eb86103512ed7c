package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"envstash/pkg/errors"
	"envstash/pkg/logger"
)

// Unpacker restores a packed environment archive into an instance-local
// prefix and relocates it from the prefix it was built under.
type Unpacker struct {
	logger *logger.Logger
}

func NewUnpacker() *Unpacker {
	return &Unpacker{
		logger: logger.New().WithField("component", "unpacker"),
	}
}

// Unpack extracts the tar.gz at src into prefix and then performs path
// relocation. Any failure leaves the prefix unusable by contract; callers
// must not fall back silently to a partially restored environment.
func (u *Unpacker) Unpack(src, prefix string) error {
	if err := u.extract(src, prefix); err != nil {
		return errors.WrapArchiveError(prefix, "unpack",
			fmt.Errorf("%w: %v", errors.ErrUnpackFailed, err))
	}

	if err := u.relocate(prefix); err != nil {
		return errors.WrapArchiveError(prefix, "relocate",
			fmt.Errorf("%w: %v", errors.ErrRelocationFailed, err))
	}

	return nil
}

func (u *Unpacker) extract(src, prefix string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	if err := os.MkdirAll(prefix, 0755); err != nil {
		return err
	}

	tr := tar.NewReader(gz)
	var files int64
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		name, err := sanitizeEntryName(hdr.Name)
		if err != nil {
			return err
		}
		target := filepath.Join(prefix, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}

		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := os.RemoveAll(target); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			files++

		default:
			// Hard links and device nodes do not occur in environments we
			// pack; reject rather than restore something surprising.
			return fmt.Errorf("unsupported entry type %d for %q", hdr.Typeflag, hdr.Name)
		}
	}

	u.logger.Debug("extracted archive", "prefix", prefix, "files", files)
	return nil
}

// relocate rewrites the build-time prefix to the restore-time prefix in
// text files and absolute symlinks. Environments record absolute paths in
// shebangs, activation scripts, and pkgconfig files; without this fixup a
// restored environment points at another node's scratch directory.
func (u *Unpacker) relocate(prefix string) error {
	oldPrefix, err := readPrefixMarker(prefix)
	if err != nil {
		return fmt.Errorf("prefix marker unreadable: %w", err)
	}

	if oldPrefix == prefix {
		return nil
	}

	var rewritten int
	err = filepath.Walk(prefix, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.Mode()&os.ModeSymlink != 0 {
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if strings.HasPrefix(link, oldPrefix) {
				newLink := prefix + strings.TrimPrefix(link, oldPrefix)
				if err := os.Remove(path); err != nil {
					return err
				}
				if err := os.Symlink(newLink, path); err != nil {
					return err
				}
				rewritten++
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		data, isText, err := readTextFile(path)
		if err != nil {
			return err
		}
		if !isText || !bytes.Contains(data, []byte(oldPrefix)) {
			return nil
		}

		replaced := bytes.ReplaceAll(data, []byte(oldPrefix), []byte(prefix))
		if err := os.WriteFile(path, replaced, info.Mode().Perm()); err != nil {
			return err
		}
		rewritten++
		return nil
	})
	if err != nil {
		return err
	}

	// Update the marker so a re-pack from this prefix relocates correctly.
	if err := WritePrefixMarker(prefix); err != nil {
		return err
	}

	u.logger.Info("relocated environment", "from", oldPrefix, "to", prefix, "rewritten", rewritten)
	return nil
}

// binarySniffLen is how much of a file the NUL-byte heuristic inspects
// before the rest is read.
const binarySniffLen = 8192

// readTextFile reads a file for rewriting, but only after the classic
// NUL-byte sniff on its head clears it as text. Shared libraries in real
// environments run to hundreds of megabytes; reading them fully just to
// discard them would spike memory for nothing. Binary files embedding the
// prefix (compiled extensions) cannot be length-changed safely anyway;
// conda-style builds keep those working via relative rpaths.
func readTextFile(path string) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	head := make([]byte, binarySniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, false, err
	}
	head = head[:n]

	if bytes.IndexByte(head, 0) >= 0 {
		return nil, false, nil
	}

	rest, err := io.ReadAll(f)
	if err != nil {
		return nil, false, err
	}
	return append(head, rest...), true, nil
}
