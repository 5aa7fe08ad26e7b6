package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// extractBinary pulls the gost binary out of the downloaded file and returns
// its path. gost has shipped tar.gz, zip and bare gzip assets over the
// years; anything else is treated as the raw binary itself.
func extractBinary(archivePath, dir string) (string, error) {
	switch name := strings.ToLower(archivePath); {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return extractTarGz(archivePath, dir)
	case strings.HasSuffix(name, ".zip"):
		return extractZip(archivePath, dir)
	case strings.HasSuffix(name, ".gz"):
		return extractGz(archivePath, dir)
	default:
		return archivePath, nil
	}
}

func isBinaryEntry(name string) bool {
	base := filepath.Base(name)
	return base == BinaryName || base == BinaryName+".exe"
}

func extractTarGz(archivePath, dir string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if hdr.Typeflag != tar.TypeReg || !isBinaryEntry(hdr.Name) {
			continue
		}
		return writeEntry(filepath.Join(dir, filepath.Base(hdr.Name)), tr)
	}
	return "", errors.Errorf("no %s binary in archive", BinaryName)
}

func extractZip(archivePath, dir string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isBinaryEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		path, err := writeEntry(filepath.Join(dir, filepath.Base(f.Name)), rc)
		rc.Close()
		return path, err
	}
	return "", errors.Errorf("no %s binary in archive", BinaryName)
}

// extractGz handles the bare gzipped binary layout of the 2.x releases.
func extractGz(archivePath, dir string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", err
	}
	defer gz.Close()

	return writeEntry(filepath.Join(dir, BinaryName), gz)
}

func writeEntry(path string, r io.Reader) (string, error) {
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return path, nil
}
