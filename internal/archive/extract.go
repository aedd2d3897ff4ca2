package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// ErrDecode marks malformed gzip framing or tar structure.
var ErrDecode = eris.New("archive: decode failure")

// Extract unpacks the gzip-compressed tar archive into the archive's own
// directory and returns that directory. Entries are written under their
// base name only, so a hostile archive cannot escape the scratch area.
// Cleanup of the extracted files belongs to the scratch-dir owner.
func Extract(archivePath string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", eris.Wrapf(ErrIO, "open %s: %v", archivePath, err)
	}
	defer f.Close() //nolint:errcheck

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", eris.Wrapf(ErrDecode, "gzip %s: %v", archivePath, err)
	}
	defer gz.Close() //nolint:errcheck

	destDir := filepath.Dir(archivePath)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", eris.Wrapf(ErrDecode, "read tar entry: %v", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if err := writeEntry(tr, filepath.Join(destDir, filepath.Base(hdr.Name))); err != nil {
			return "", err
		}
	}

	return destDir, nil
}

// writeEntry copies one tar entry to disk. Read-side corruption of the
// compressed stream surfaces here too, so it is classified separately
// from plain write failures.
func writeEntry(r io.Reader, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(ErrIO, "create %s: %v", path, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		if errors.Is(err, gzip.ErrChecksum) || errors.Is(err, gzip.ErrHeader) || errors.Is(err, io.ErrUnexpectedEOF) {
			return eris.Wrapf(ErrDecode, "extract %s: %v", path, err)
		}
		return eris.Wrapf(ErrIO, "extract %s: %v", path, err)
	}

	if err := out.Close(); err != nil {
		return eris.Wrapf(ErrIO, "close %s: %v", path, err)
	}
	return nil
}
