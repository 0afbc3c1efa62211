// Command dhpvss is a demonstration driver for the DH-PVSS engine: it can
// run a full single-process distribute/decrypt/reconstruct session, or a
// reshare to a successor committee, logging each phase with
// go.dedis.ch/onet/v3/log the way the teacher's tooling does.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.dedis.ch/onet/v3/log"

	"github.com/brorsson/dhpvss/config"
	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/pvss"
)

var (
	version = "dev"
)

func toArray(flags ...cli.Flag) []cli.Flag { return flags }

func main() {
	app := cli.NewApp()
	app.Name = "dhpvss"
	app.Usage = "DH-PVSS demonstration driver"
	app.Version = version

	configFlag := cli.StringFlag{
		Name:  "config, c",
		Usage: "path to the epoch's TOML configuration file",
	}
	debugFlag := cli.IntFlag{
		Name:  "debug, d",
		Usage: "log verbosity, 1 (terse) to 5 (noisy)",
		Value: 1,
	}

	app.Commands = []cli.Command{
		{
			Name:  "setup",
			Usage: "validate an epoch configuration and print its derived parameters",
			Flags: toArray(configFlag, debugFlag),
			Action: func(c *cli.Context) error {
				log.SetDebugVisible(c.Int("debug"))
				return setupCmd(c)
			},
		},
		{
			Name:  "demo",
			Usage: "run a full distribute/decrypt/reconstruct session in-process",
			Flags: toArray(configFlag, debugFlag),
			Action: func(c *cli.Context) error {
				log.SetDebugVisible(c.Int("debug"))
				return demoCmd(c)
			},
		},
		{
			Name:  "reshare",
			Usage: "run a distribute/reshare/reconstruct session against a successor committee",
			Flags: toArray(configFlag, cli.StringFlag{Name: "next-config"}, debugFlag),
			Action: func(c *cli.Context) error {
				log.SetDebugVisible(c.Int("debug"))
				return reshareCmd(c)
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCtx(c *cli.Context, flag string) (*config.Epoch, *curve.Suite, *pvss.Ctx, error) {
	path := c.String(flag)
	if path == "" {
		return nil, nil, nil, cli.NewExitError("missing --"+flag, 1)
	}
	epoch, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	suite, err := epoch.Suite()
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, err := pvss.Setup(suite, epoch.Threshold, epoch.Size)
	if err != nil {
		return nil, nil, nil, err
	}
	return epoch, suite, ctx, nil
}
