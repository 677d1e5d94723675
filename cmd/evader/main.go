package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"github.com/zeusync/evader/internal/core/enemy"
	"github.com/zeusync/evader/internal/core/npc"
	"github.com/zeusync/evader/internal/core/observability/log"
	"github.com/zeusync/evader/internal/injector"
	"github.com/zeusync/evader/internal/sim"
	"github.com/zeusync/evader/pkg/concurrent"
)

func main() {
	if err := makeapp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "evader"
	app.Usage = "Run the dodge-and-hide enemy in a headless arena"

	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "Play one or more scenario files",
			ArgsUsage: "scenario.yaml [scenario.yaml...]",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "level", Value: "info", Usage: "Log level: debug, info, warn or error"},
				cli.IntFlag{Name: "concurrency", Value: 0, Usage: "Scenarios played at once; 0 plays all"},
				cli.StringFlag{Name: "policy", Value: "", Usage: "Policy YAML replacing the built-in tree"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() == 0 {
					return cli.NewExitError("at least one scenario file is required", 2)
				}
				level, err := log.ParseLevel(c.String("level"))
				if err != nil {
					return cli.NewExitError(err.Error(), 2)
				}
				return runAction(c.Args(), level, c.Int("concurrency"), c.String("policy"))
			},
		},
		{
			Name:  "policy",
			Usage: "Print a policy tree and its fingerprint",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "file", Value: "", Usage: "Policy YAML; the built-in tree when empty"},
			},
			Action: func(c *cli.Context) error {
				return policyAction(c.String("file"))
			},
		},
	}
	return app
}

func runAction(paths []string, level log.Level, concurrency int, policyPath string) error {
	logger := injector.InitializeLogger(level)
	defer func() { _ = logger.Sync() }()

	var opts []enemy.Option
	if policyPath != "" {
		policy, err := loadPolicy(policyPath)
		if err != nil {
			return err
		}
		opts = append(opts, enemy.WithPolicy(policy))
	}

	scenarios := make([]*sim.Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := sim.LoadScenarioFile(path)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, sc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reports, err := concurrent.Map(ctx, scenarios, concurrency, func(ctx context.Context, sc *sim.Scenario) (sim.Report, error) {
		report, err := sc.Run(ctx, logger, opts...)
		if err != nil {
			logger.Warn("scenario interrupted", append(report.Fields(), log.Error(err))...)
			return report, fmt.Errorf("%s: %w", sc.Name, err)
		}
		return report, nil
	})
	if err != nil {
		return err
	}
	for _, report := range reports {
		logger.Info("scenario finished", report.Fields()...)
	}
	return nil
}

func policyAction(path string) error {
	cfg, err := enemy.DefaultPolicy()
	if path != "" {
		cfg, err = loadPolicy(path)
	}
	if err != nil {
		return err
	}
	tree, err := npc.Build(cfg, enemy.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("%s (%016x)\n", tree.Name(), tree.Fingerprint())
	tree.Root().Walk(func(n *npc.Node[*enemy.Situation], depth int) bool {
		fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth+1), n.Kind(), n.Name())
		return true
	})
	return nil
}

func loadPolicy(path string) (*npc.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := npc.LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
