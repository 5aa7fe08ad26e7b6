package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/hostapklok/flare-bypasser/checks"
	"github.com/hostapklok/flare-bypasser/gostgithub"
	"github.com/hostapklok/flare-bypasser/installer"
	"github.com/hostapklok/flare-bypasser/log"
	"github.com/hostapklok/flare-bypasser/models"
	"github.com/hostapklok/flare-bypasser/platform"
	"github.com/hostapklok/flare-bypasser/selector"
)

const (
	gostOwner = "go-gost"
	gostRepo  = "gost"
	binDir    = "/usr/local/bin"
	tmpDir    = "/tmp/gost-installer"
)

func main() {

	var install bool
	var verbose bool

	app := cli.NewApp()
	app.Name = "gost-installer"
	app.Usage = "install a prebuilt gost binary from GitHub releases"
	app.Version = "0.0.1"

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:        "install, i",
			Usage:       "Install the newest version without prompting",
			Destination: &install,
		}, cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Full debug log",
			Destination: &verbose,
		},
	}

	app.Action = func(c *cli.Context) error {

		if verbose {
			log.L.Logger.SetLevel(logrus.DebugLevel)
		}

		ctx := context.Background()

		if err := checks.InstallPrivileges(binDir); err != nil {
			return err
		}

		host, err := platform.Host()
		if err != nil {
			return err
		}
		log.G(ctx).Debugf("Host platform: %s", host)

		source := &gostgithub.Source{
			Client: gostgithub.CreateClient(ctx),
			Owner:  gostOwner,
			Repo:   gostRepo,
		}

		releases, err := source.ListVersions(ctx)
		if err != nil {
			return err
		}

		var selected models.Release
		if install {
			selected, err = selector.Latest(releases)
		} else {
			selected, err = selector.Interactive(os.Stdin, os.Stdout, releases)
		}
		if err != nil {
			return err
		}

		release, err := source.GetRelease(ctx, selected.Tag)
		if err != nil {
			return err
		}

		asset, err := gostgithub.MatchAsset(release.Assets, host)
		if err != nil {
			return err
		}

		inst := &installer.Installer{BinDir: binDir, TmpDir: tmpDir}
		if err := inst.Install(ctx, release, asset); err != nil {
			return err
		}

		log.G(ctx).Infof("gost %s installation completed", release.Tag)
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.L.Fatal(err)
	}
}
