package archive

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// archiveName is the local name the downloaded archive is stored under.
const archiveName = "current_all.tar.gz"

var (
	// ErrTransport marks failures to reach or complete the archive request.
	ErrTransport = eris.New("archive: transport failure")
	// ErrIO marks local file create/write failures.
	ErrIO = eris.New("archive: io failure")
)

// Fetch downloads the bulk alert archive into a fresh scratch directory
// and returns the archive's path. The cleanup func removes the scratch
// directory and everything later extracted into it; the caller owns it
// for the rest of the run. A failed fetch is not retried.
func Fetch(ctx context.Context, client *http.Client, url string) (string, func(), error) {
	zap.L().Debug("downloading alert archive", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, eris.Wrapf(ErrTransport, "build request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", nil, eris.Wrapf(ErrTransport, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", nil, eris.Wrapf(ErrTransport, "fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	dir, err := os.MkdirTemp("", "wxwarn-*")
	if err != nil {
		return "", nil, eris.Wrapf(ErrIO, "create scratch dir: %v", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, archiveName)
	f, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, eris.Wrapf(ErrIO, "create %s: %v", path, err)
	}

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, eris.Wrapf(ErrIO, "write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, eris.Wrapf(ErrIO, "close %s: %v", path, err)
	}

	zap.L().Debug("alert archive saved", zap.String("path", path), zap.Int64("bytes", n))
	return path, cleanup, nil
}
