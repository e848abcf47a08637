// Package main provides bipchip, a command-line utility to inspect, create,
// read and fill band-interleaved-by-pixel raster files.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jrivets/log4g"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	ucli "gopkg.in/urfave/cli.v2"

	"github.com/scigolib/bip"
)

// Version of the bipchip utility.
const Version = "0.1.0"

const (
	argDescriptor = "descriptor"
	argSet        = "set"
	argLogCfgFile = "log-config-file"
	argBackend    = "backend"
	argWindow     = "window"
	argExclusive  = "exclusive"
	argValue      = "value"
	argOffset     = "offset"
	argLength     = "length"

	envDescriptor = "BIPCHIP_DESCRIPTOR"
	envLogCfgFile = "BIPCHIP_LOG_CONFIG"
)

var logger = log4g.GetLogger("bipchip")

func main() {
	defer log4g.Shutdown()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	cmnFlags := []ucli.Flag{
		&ucli.StringFlag{
			Name:  argDescriptor,
			Usage: "raster descriptor file (YAML or JSON), defaults to $" + envDescriptor,
		},
		&ucli.StringFlag{
			Name:  argSet,
			Usage: "descriptor overrides as key=value pairs, e.g. \"rows=100 cols=50 type=i2\"",
		},
		&ucli.StringFlag{
			Name:  argLogCfgFile,
			Usage: "log4g configuration file path, defaults to $" + envLogCfgFile,
		},
		&ucli.StringFlag{
			Name:  argBackend,
			Usage: "storage backend, one of: \"auto\", \"mapped\" or \"manual\"",
		},
	}
	windowFlag := &ucli.StringFlag{
		Name:  argWindow,
		Usage: "window as \"rows, cols\" with start:stop:step axes, e.g. \"0:10, ::-1\"",
		Value: ":",
	}

	app := &ucli.App{
		Name:    "bipchip",
		Version: Version,
		Usage:   "BIP raster chipper",
		Commands: []*ucli.Command{
			{
				Name:      "info",
				Usage:     "Print the raster layout",
				ArgsUsage: "<file>",
				Action:    runInfo,
				Flags:     cmnFlags,
			},
			{
				Name:      "create",
				Usage:     "Create a zero-filled raster",
				ArgsUsage: "<file>",
				Action:    runCreate,
				Flags: append([]ucli.Flag{
					&ucli.BoolFlag{
						Name:  argExclusive,
						Usage: "fail if the file already exists",
					},
				}, cmnFlags...),
			},
			{
				Name:      "read",
				Usage:     "Print the pixels of a window",
				ArgsUsage: "<file>",
				Action:    runRead,
				Flags:     append([]ucli.Flag{windowFlag}, cmnFlags...),
			},
			{
				Name:      "fill",
				Usage:     "Set every sample of a contiguous window to a value",
				ArgsUsage: "<file>",
				Action:    runFill,
				Flags: append([]ucli.Flag{
					windowFlag,
					&ucli.Float64Flag{
						Name:  argValue,
						Usage: "sample value",
					},
				}, cmnFlags...),
			},
			{
				Name:      "dump",
				Usage:     "Hex dump raw file bytes",
				ArgsUsage: "<file>",
				Action:    runDump,
				Flags: []ucli.Flag{
					&ucli.Int64Flag{
						Name:  argOffset,
						Usage: "offset in file to start dumping from",
					},
					&ucli.IntFlag{
						Name:  argLength,
						Usage: "number of bytes to dump",
						Value: 128,
					},
				},
			},
		},
	}

	sort.Sort(ucli.CommandsByName(app.Commands))
	for _, c := range app.Commands {
		sort.Sort(ucli.FlagsByName(c.Flags))
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// fileArg returns the single positional file argument.
func fileArg(c *ucli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("exactly one file argument expected, but %d given", c.Args().Len())
	}
	return c.Args().First(), nil
}

// initDescriptor configures logging and assembles the descriptor from the
// descriptor file, the inline overrides and the backend flag.
func initDescriptor(c *ucli.Context) (bip.Descriptor, error) {
	logCfgFile := stringOrEnv(c, argLogCfgFile, envLogCfgFile)
	if logCfgFile != "" {
		if err := log4g.ConfigF(logCfgFile); err != nil {
			return bip.Descriptor{}, errors.Wrapf(err, "could not configure logging from %s", logCfgFile)
		}
	}

	var (
		desc bip.Descriptor
		err  error
	)
	if fn := stringOrEnv(c, argDescriptor, envDescriptor); fn != "" {
		logger.Info("Loading descriptor from=", fn)
		if desc, err = bip.LoadDescriptor(fn); err != nil {
			return bip.Descriptor{}, err
		}
	}

	if set := c.String(argSet); set != "" {
		if fn := stringOrEnv(c, argDescriptor, envDescriptor); fn == "" {
			desc, err = bip.ParseDescriptor(set)
		} else {
			desc, err = desc.Override(set)
		}
		if err != nil {
			return bip.Descriptor{}, err
		}
	}

	if b := c.String(argBackend); b != "" {
		if desc, err = desc.Override("backend=" + b); err != nil {
			return bip.Descriptor{}, err
		}
	}

	if !desc.Type.Kind.Valid() {
		return bip.Descriptor{}, fmt.Errorf("no raster descriptor given, use --%s or --%s", argDescriptor, argSet)
	}
	return desc, nil
}

func stringOrEnv(c *ucli.Context, flag, env string) string {
	if v := c.String(flag); v != "" {
		return v
	}
	return os.Getenv(env)
}
