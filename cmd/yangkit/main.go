// Copyright 2015 Google Inc.
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

// Program yangkit parses YANG modules, resolves them through a
// yang.Ctx, and renders the result in one of several formats.
//
// Usage: yangkit [--path PATH] [--format FORMAT] [--config FILE]
//                 [--metrics-addr ADDR] [--watch]
//                 [--include-disabled-features] [MODULE] [FILE ...]
package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/pborman/getopt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/schemaforge/yangkit/pkg/yang"
)

// formatter describes one output format this tool can produce,
// registered by the file implementing it (tree.go, types.go, ...).
type formatter struct {
	name  string
	f     func(w io.Writer, entries []*yang.Entry, opts yang.PrintOptions)
	help  string
	flags *getopt.Set
}

var formatters = map[string]*formatter{}
var formatterOrder []string

// register adds f to the set of formats selectable with --format.
func register(f *formatter) {
	if _, ok := formatters[f.name]; ok {
		panic(fmt.Sprintf("yangkit: duplicate formatter %q", f.name))
	}
	formatters[f.name] = f
	formatterOrder = append(formatterOrder, f.name)
}

func exitIfError(errs []error) {
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func main() {
	var (
		format      string
		configPath  string
		metricsAddr string
		watch       bool
		logLevel    string
		includeDisabled bool
	)

	getopt.CommandLine.ListVarLong(&yang.Path, "path", 0, "comma separated list of directories to add to PATH")
	getopt.CommandLine.StringVarLong(&format, "format", 0, formatHelp())
	getopt.CommandLine.StringVarLong(&configPath, "config", 0, "path to a YAML configuration file")
	getopt.CommandLine.StringVarLong(&metricsAddr, "metrics-addr", 0, "address to serve Prometheus /metrics on, e.g. :9100")
	getopt.CommandLine.BoolVarLong(&watch, "watch", 0, "watch the config file's watch directories for changed *.yang files and re-resolve")
	getopt.CommandLine.StringVarLong(&logLevel, "log-level", 0, "zerolog level: debug, info, warn, error")
	getopt.CommandLine.BoolVarLong(&includeDisabled, "include-disabled-features", 0, "include if-feature-disabled nodes in tree/yang/yin output")

	getopt.Parse()
	files := getopt.Args()

	cfg := yang.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = yang.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	if format == "" {
		format = cfg.Format
	}
	if includeDisabled {
		cfg.IncludeDisabledFeatures = true
	}
	cfg.Apply()

	printOpts := yang.PrintOptions{IncludeDisabledFeatures: cfg.IncludeDisabledFeatures}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zl := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	logger := yang.NewZerologLogger(zl)

	reg := prometheus.NewRegistry()
	metrics := yang.NewPrometheusMetrics(reg)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Errorf("metrics server: %v", err)
			}
		}()
	}

	c := yang.NewCtx()
	c.SetLogger(logger)
	c.SetMetrics(metrics)

	if len(files) > 0 && !strings.HasSuffix(files[0], ".yang") {
		e, errs := yang.GetModule(files[0], files[1:]...)
		exitIfError(errs)
		runFormat(format, os.Stdout, []*yang.Entry{e}, printOpts)
		return
	}

	if len(files) == 0 {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if _, err := c.ParseModule(data, yang.FormatYANG, "<STDIN>"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	for _, name := range files {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if _, err := c.ParseModule(data, yang.FormatYANG, name); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	mods := c.Modules()
	var names []string
	seen := map[string]bool{}
	for _, m := range mods.Modules {
		if !seen[m.Name] {
			seen[m.Name] = true
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)

	var entries []*yang.Entry
	for _, n := range names {
		m, ok := c.GetModule(n, "")
		if !ok {
			continue
		}
		for _, feat := range cfg.EnabledFeatures[n] {
			if err := c.FeaturesEnable(m, feat); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		c.Seal(m)
		entries = append(entries, yang.ToEntry(m))
	}

	runFormat(format, os.Stdout, entries, printOpts)

	if watch && len(cfg.Watch) > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt)
			<-sigs
			cancel()
		}()
		err := c.WatchPaths(ctx, cfg.Watch, func(path string) error {
			data, err := ioutil.ReadFile(path)
			if err != nil {
				return err
			}
			_, err = c.ParseModule(data, yang.FormatYANG, path)
			return err
		})
		if err != nil && err != context.Canceled {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func runFormat(name string, w io.Writer, entries []*yang.Entry, opts yang.PrintOptions) {
	f, ok := formatters[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown format: %s\n", name)
		os.Exit(1)
	}
	f.f(w, entries, opts)
}

func formatHelp() string {
	sort.Strings(formatterOrder)
	return "format to display: " + strings.Join(formatterOrder, ", ")
}
