// Copyright 2025 The Sidekick Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command sidekick is a local assistant: a tool-calling agent loop over
// a local Ollama model, with a retrieval index and an HTTP front end.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/logger"
	"github.com/sidekick-dev/sidekick/pkg/server"
	"github.com/sidekick-dev/sidekick/pkg/team"
)

const version = "1.0.0"

type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	Serve   ServeCmd   `cmd:"" help:"Start the HTTP server."`
	Index   IndexCmd   `cmd:"" help:"Index documents into the knowledge base."`
	Query   QueryCmd   `cmd:"" help:"Run a one-shot query."`
	Team    TeamCmd    `cmd:"" help:"Run a task through the multi-agent team."`

	Config   string `short:"c" help:"Path to config file." type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"info"`

	// closeLog flushes the log file, when one is configured.
	closeLog func() error
}

type VersionCmd struct{}

func (c *VersionCmd) Run(cli *CLI) error {
	fmt.Printf("sidekick %s\n", version)
	return nil
}

type ServeCmd struct{}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	rt, err := newRuntime(cfg, runtimeOptions{withAgent: true, withWatcher: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := server.New(&cfg.Server, rt.sessions, rt.store, rt.indexer)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

type IndexCmd struct {
	Path string `arg:"" help:"File or directory to index." type:"path"`
}

func (c *IndexCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	rt, err := newRuntime(cfg, runtimeOptions{})
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := context.Background()
	info, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("cannot index %s: %w", c.Path, err)
	}

	if info.IsDir() {
		files, chunks, err := rt.indexer.IndexDirectory(ctx, c.Path)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d file(s), %d chunk(s)\n", files, chunks)
		return nil
	}

	chunks, err := rt.indexer.IndexFile(ctx, c.Path)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d chunk(s)\n", chunks)
	return nil
}

type QueryCmd struct {
	Text string `arg:"" help:"The question to ask."`
}

func (c *QueryCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	rt, err := newRuntime(cfg, runtimeOptions{withAgent: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	id, err := rt.sessions.Create("")
	if err != nil {
		return err
	}
	defer rt.sessions.Destroy(id)

	answer, err := rt.sessions.Query(id, c.Text)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

type TeamCmd struct {
	Task  string `arg:"" help:"The task for the team."`
	Roles string `help:"Comma-separated roles (researcher, coder, analyst, writer, planner, critic)."`
}

func (c *TeamCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	rt, err := newRuntime(cfg, runtimeOptions{withAgent: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	var roles []team.Role
	if c.Roles != "" {
		for _, name := range strings.Split(c.Roles, ",") {
			roles = append(roles, team.Role(strings.TrimSpace(name)))
		}
	}

	coordinator, err := team.NewCoordinator(rt.provider, rt.registry)
	if err != nil {
		return err
	}

	result, err := coordinator.Solve(context.Background(), c.Task, roles)
	if err != nil {
		return err
	}

	for _, role := range result.Order {
		fmt.Printf("[%s]\n%s\n\n", role, result.Outputs[role])
	}
	return nil
}

func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	closer, err := logger.Configure(cfg.Logging)
	if err != nil {
		return nil, err
	}
	cli.closeLog = closer
	return cfg, nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("sidekick"),
		kong.Description("Local tool-calling assistant with retrieval."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&cli)
	if cli.closeLog != nil {
		_ = cli.closeLog()
	}
	ctx.FatalIfErrorf(err)
}
