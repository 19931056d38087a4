/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wso2/api-platform/management-repository/config"
	"github.com/wso2/api-platform/management-repository/internal/logger"
	"github.com/wso2/api-platform/management-repository/internal/metrics"
	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
	"github.com/wso2/api-platform/management-repository/internal/seed"
)

// app is the state shared by the subcommands once the backend is open
type app struct {
	out    io.Writer
	cfg    *config.Server
	logger *zap.Logger
	repo   *repository.Proxy

	repositoryType string
	logLevel       string
}

// execute runs the command line args and releases the backend whatever the outcome
func execute(ctx context.Context, out io.Writer, args []string) error {
	a := &app{out: out}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	err := root.ExecuteContext(ctx)
	return multierr.Append(err, a.close(ctx))
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "repoctl",
		Short:         "Administer the management repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.repositoryType, "repository", "", "repository backend, overrides REPOSITORY_TYPE ("+strings.Join(repository.Backends(), ", ")+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "supported log levels are debug, info, warn and error, overrides LOG_LEVEL")

	root.AddCommand(
		a.newSchemaCommand(),
		a.newSeedCommand(),
		a.newEventsCommand(),
		a.newMediaCommand(),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.repositoryType != "" {
		cfg.RepositoryType = a.repositoryType
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	log, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	metrics.SetEnabled(cfg.Metrics.Enabled)
	metrics.Init()

	repo, err := repository.Open(cmd.Context(), cfg, log)
	if err != nil {
		_ = log.Sync()
		return err
	}
	a.cfg, a.logger, a.repo = cfg, log, repo
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.repo == nil {
		return nil
	}
	var errs error
	if metrics.IsEnabled() {
		errs = multierr.Append(errs, dumpMetrics(os.Stderr))
	}
	errs = multierr.Append(errs, a.repo.Close(ctx))
	a.repo = nil
	if a.logger != nil {
		// Syncing stderr fails on some terminals
		_ = a.logger.Sync()
	}
	return errs
}

// dumpMetrics writes the registry in the text exposition format
func dumpMetrics(w io.Writer) error {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) print(v any) error {
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (a *app) newSchemaCommand() *cobra.Command {
	schema := &cobra.Command{
		Use:   "schema",
		Short: "Manage the storage schema",
	}
	schema.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the tables or indexes of the selected backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.repo.InitSchema(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			a.logger.Info("Schema initialized", zap.String("backend", a.repo.Name()))
			return nil
		},
	})
	return schema
}

func (a *app) newSeedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the entities of a fixture file that do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixtures, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			report, err := seed.NewSeeder(a.repo, a.logger).Seed(cmd.Context(), fixtures)
			if err != nil {
				return err
			}
			return a.print(report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path of the YAML fixture file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// eventFlags are the criteria shared by the event subcommands
type eventFlags struct {
	environment string
	from        string
	to          string
	types       []string
	properties  []string
	page        int
	size        int
}

func (f *eventFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.environment, "env", "", "environment id")
	cmd.Flags().StringVar(&f.from, "from", "", "lower bound on the update time, RFC3339, inclusive")
	cmd.Flags().StringVar(&f.to, "to", "", "upper bound on the update time, RFC3339, exclusive")
	cmd.Flags().StringSliceVar(&f.types, "type", nil, "event types")
	cmd.Flags().StringArrayVar(&f.properties, "property", nil, "property filter key=value, repeatable")
	cmd.Flags().IntVar(&f.page, "page", 0, "page number, starting at 0")
	cmd.Flags().IntVar(&f.size, "size", 0, "page size, 0 returns every result")
}

func (f *eventFlags) criteria() (*repository.EventCriteria, error) {
	criteria := &repository.EventCriteria{EnvironmentID: f.environment}
	var err error
	if criteria.From, err = parseMillis(f.from); err != nil {
		return nil, fmt.Errorf("invalid --from: %w", err)
	}
	if criteria.To, err = parseMillis(f.to); err != nil {
		return nil, fmt.Errorf("invalid --to: %w", err)
	}
	for _, t := range f.types {
		criteria.Types = append(criteria.Types, model.EventType(t))
	}
	for _, p := range f.properties {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --property %q, expected key=value", p)
		}
		if criteria.Properties == nil {
			criteria.Properties = repository.PropertyFilter{}
		}
		criteria.Properties[key] = append(criteria.Properties[key], value)
	}
	return criteria, nil
}

func (f *eventFlags) pageable() *repository.Pageable {
	if f.size <= 0 {
		return nil
	}
	return &repository.Pageable{PageNumber: f.page, PageSize: f.size}
}

func parseMillis(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func (a *app) newEventsCommand() *cobra.Command {
	events := &cobra.Command{
		Use:   "events",
		Short: "Query deployment events",
	}

	var search eventFlags
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "List the events matching the criteria, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := search.criteria()
			if err != nil {
				return err
			}
			page, err := a.repo.Events().Search(cmd.Context(), criteria, search.pageable())
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	search.bind(searchCmd)

	var latest eventFlags
	var group string
	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent event of every value of a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := latest.criteria()
			if err != nil {
				return err
			}
			list, err := a.repo.Events().SearchLatest(cmd.Context(), criteria, model.EventProperty(group), latest.pageable())
			if err != nil {
				return err
			}
			return a.print(list)
		},
	}
	latest.bind(latestCmd)
	latestCmd.Flags().StringVar(&group, "group", string(model.EventPropertyAPI), "property the events are grouped by")

	events.AddCommand(searchCmd, latestCmd)
	return events
}

func (a *app) newMediaCommand() *cobra.Command {
	media := &cobra.Command{
		Use:   "media",
		Short: "Manage stored media",
	}

	var api string
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete every media attached to an API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.repo.Media().FindAllByAPI(cmd.Context(), api)
			if err != nil {
				return err
			}
			if err := a.repo.Media().DeleteAllByAPI(cmd.Context(), api); err != nil {
				return err
			}
			a.logger.Info("Media purged", zap.String("api", api), zap.Int("count", len(list)))
			return nil
		},
	}
	purge.Flags().StringVar(&api, "api", "", "API whose media are deleted")
	_ = purge.MarkFlagRequired("api")

	media.AddCommand(purge)
	return media
}
