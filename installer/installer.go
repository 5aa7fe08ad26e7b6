package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/hostapklok/flare-bypasser/log"
	"github.com/hostapklok/flare-bypasser/models"
)

// BinaryName is the executable gost ships inside its release archives.
const BinaryName = "gost"

// Installer downloads a release asset, unpacks the gost binary and places it
// in the system bin directory. Every step failure is returned to the caller
// and terminates the run, there is no retry and no rollback.
type Installer struct {
	BinDir string
	TmpDir string
}

// Install runs the download, unpack, chmod, move sequence for one resolved
// asset. The target path is overwritten when a previous install exists.
func (i *Installer) Install(ctx context.Context, release *models.Release, asset *models.Asset) error {
	if err := os.MkdirAll(i.TmpDir, os.ModePerm); err != nil {
		return errors.Wrapf(err, "creating work dir %s", i.TmpDir)
	}

	archivePath := filepath.Join(i.TmpDir, asset.Name)
	if err := i.download(ctx, asset, archivePath); err != nil {
		return errors.Wrapf(err, "downloading %s", asset.URL)
	}

	binaryPath, err := extractBinary(archivePath, i.TmpDir)
	if err != nil {
		return errors.Wrapf(err, "unpacking %s", asset.Name)
	}

	if err := os.Chmod(binaryPath, 0755); err != nil {
		return errors.Wrapf(err, "marking %s executable", binaryPath)
	}

	target := filepath.Join(i.BinDir, BinaryName)
	if err := moveFile(binaryPath, target); err != nil {
		return errors.Wrapf(err, "installing %s", target)
	}

	log.G(ctx).Infof("Installed gost %s to %s", release.Tag, target)
	return nil
}

func (i *Installer) download(ctx context.Context, asset *models.Asset, path string) error {
	log.G(ctx).Infof("Downloading %s (%s)", asset.Name, humanize.Bytes(uint64(asset.Size)))

	req, err := http.NewRequest(http.MethodGet, asset.URL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return err
	}
	log.G(ctx).Debugf("Wrote %s to %s", humanize.Bytes(uint64(written)), path)
	return nil
}

// moveFile renames when possible and falls back to copying when the work dir
// and the bin dir sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
