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
	"github.com/hostapklok/flare-bypasser/platform"
)

const (
	gostOwner = "go-gost"
	gostRepo  = "gost"
	binDir    = "/usr/local/bin"
	tmpDir    = "/tmp/gost-installer"
)

// Targeted variant of the installer: no listing, no menu, installs exactly
// the tag named on the command line.
func main() {
	var tag string
	var verbose bool

	app := cli.NewApp()
	app.Name = "gost-installer-tag"
	app.Usage = "install one named gost release from GitHub"
	app.Version = "0.0.1"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "tag, t",
			Usage:       "Release tag to install, e.g. v3.0.0",
			Destination: &tag,
			Required:    true,
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

		ctx := log.WithLogger(context.Background(), log.L.WithField("tag", tag))

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

		release, err := source.GetRelease(ctx, tag)
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
