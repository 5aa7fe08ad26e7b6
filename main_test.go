package main

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	ghApi "github.com/google/go-github/v26/github"

	"github.com/hostapklok/flare-bypasser/gostgithub"
	"github.com/hostapklok/flare-bypasser/installer"
	"github.com/hostapklok/flare-bypasser/platform"
	"github.com/hostapklok/flare-bypasser/selector"
)

// Unattended end-to-end flow against a mocked release API: two published
// versions, a linux/amd64 host, --install semantics. The newest version must
// be resolved, its linux+amd64 asset matched and installed.
func TestUnattendedInstallFlow(t *testing.T) {
	archive := buildTarGz(t, "gost", "fake gost binary")

	mux := http.NewServeMux()
	var downloads *httptest.Server
	mux.HandleFunc("/repos/go-gost/gost/releases", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"tag_name": "v3.0.0"}, {"tag_name": "v2.9.0"}]`)
	})
	mux.HandleFunc("/repos/go-gost/gost/releases/tags/v3.0.0", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"tag_name": "v3.0.0",
			"assets": [
				{"name": "gost_3.0.0_darwin_arm64.tar.gz", "browser_download_url": "%[1]s/darwin"},
				{"name": "gost_3.0.0_linux_amd64.tar.gz", "browser_download_url": "%[1]s/linux", "size": %[2]d}
			]
		}`, downloads.URL, len(archive))
	})
	mux.HandleFunc("/repos/go-gost/gost/releases/tags/v2.9.0", func(w http.ResponseWriter, r *http.Request) {
		t.Error("unattended mode requested assets for the older version")
		http.NotFound(w, r)
	})

	api := httptest.NewServer(mux)
	defer api.Close()
	downloads = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/linux" {
			t.Errorf("downloaded wrong asset: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Write(archive)
	}))
	defer downloads.Close()

	client := ghApi.NewClient(nil)
	base, _ := url.Parse(api.URL + "/")
	client.BaseURL = base
	source := &gostgithub.Source{Client: client, Owner: "go-gost", Repo: "gost"}

	ctx := context.Background()
	host, err := platform.Detect("linux", "x86_64")
	if err != nil {
		t.Fatal(err)
	}

	releases, err := source.ListVersions(ctx)
	if err != nil {
		t.Fatalf("ListVersions() error = %v", err)
	}

	selected, err := selector.Latest(releases)
	if err != nil {
		t.Fatal(err)
	}
	if selected.Tag != "v3.0.0" {
		t.Fatalf("selected %s, want v3.0.0", selected.Tag)
	}

	release, err := source.GetRelease(ctx, selected.Tag)
	if err != nil {
		t.Fatalf("GetRelease() error = %v", err)
	}

	asset, err := gostgithub.MatchAsset(release.Assets, host)
	if err != nil {
		t.Fatalf("MatchAsset() error = %v", err)
	}
	if asset.Name != "gost_3.0.0_linux_amd64.tar.gz" {
		t.Fatalf("matched %s, want the linux amd64 asset", asset.Name)
	}

	inst := &installer.Installer{BinDir: t.TempDir(), TmpDir: t.TempDir()}
	if err := inst.Install(ctx, release, asset); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(inst.BinDir, installer.BinaryName)); err != nil {
		t.Errorf("installed binary missing: %v", err)
	}
}

func buildTarGz(t *testing.T, entryName, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name:     entryName,
		Mode:     0644,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
