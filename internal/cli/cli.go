package cli

import (
	"github.com/gnomegl/gitoverlap/internal/github"
	"github.com/gnomegl/gitoverlap/internal/utils"
	"github.com/urfave/cli/v2"
)

var defaultRetryWait = github.DefaultConfig().RetryWait

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options] [login ...]

Logins given as arguments replace the names file.

Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "GitHub personal access token",
			EnvVars: []string{github.TokenEnvVar},
		},
		&cli.StringFlag{
			Name:  "token-file",
			Usage: "File with one GitHub token per line, used as a client pool",
		},
		&cli.StringFlag{
			Name:  "proxy-file",
			Usage: "File with one proxy per line, paired with tokens in order",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file (default: gitoverlap.yaml if present)",
		},
		&cli.StringFlag{
			Name:    "names",
			Aliases: []string{"n"},
			Usage:   "File with one candidate login per line",
			Value:   "candidates.txt",
		},
		&cli.StringFlag{
			Name:    "mutual",
			Aliases: []string{"m"},
			Usage:   "Two logins to intersect, comma separated (default: first two candidates)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Graph output file",
			Value:   "network.gexf",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Graph format (gexf, gml, dot); derived from the output extension if empty",
		},
		&cli.StringFlag{
			Name:    "report",
			Aliases: []string{"r"},
			Usage:   "Report format (text, json, csv)",
			Value:   "text",
		},
		&cli.IntFlag{
			Name:  "top",
			Usage: "Number of most followed accounts to report",
			Value: 5,
		},
		&cli.IntFlag{
			Name:  "max-friends",
			Usage: "Maximum number of followed accounts fetched per candidate",
			Value: 5000,
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Candidates fetched concurrently",
			Value:   4,
		},
		&cli.IntFlag{
			Name:  "retries",
			Usage: "Attempts per API request",
			Value: 5,
		},
		&cli.DurationFlag{
			Name:  "retry-wait",
			Usage: "Wait between failed attempts; rate limit errors wait for the reset instead",
			Value: defaultRetryWait,
		},
		&cli.Float64Flag{
			Name:  "rps",
			Usage: "Requests per second across all clients (0 for no limit)",
			Value: 10,
		},
		&cli.BoolFlag{
			Name:  "skip-orgs",
			Usage: "Skip candidates that are organizations",
		},
		&cli.BoolFlag{
			Name:  "no-resolve",
			Usage: "Do not look up logins for reported account IDs",
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: "GitHub Enterprise base URL",
		},
		&cli.BoolFlag{
			Name:  "no-prompt",
			Usage: "Never prompt for a token",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log requests, retries and rate limit waits to stderr",
		},
	}
}

func NewApp(action cli.ActionFunc) *cli.App {
	cli.AppHelpTemplate = helpTemplate
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	return &cli.App{
		Name:      "gitoverlap",
		Usage:     "Map who a set of GitHub accounts follow and where their follows overlap",
		Version:   "v" + utils.GetVersion(),
		Flags:     Flags(),
		Action:    action,
		ArgsUsage: "[login ...]",
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}
}
