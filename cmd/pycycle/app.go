// # cmd/pycycle/app.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pycycle/internal/config"
	"pycycle/internal/export"
	"pycycle/internal/graph"
	"pycycle/internal/history"
	"pycycle/internal/observability"
	"pycycle/internal/output"
	"pycycle/internal/parser"
	"pycycle/internal/scanner"
	"pycycle/internal/watcher"
)

type App struct {
	Config  *config.Config
	Scanner *scanner.Scanner

	store      *history.Store
	obsServer  *observability.Server
	teaProgram *tea.Program

	lastCycles [][]string
	lastScan   time.Time
}

// ScanResult bundles everything a single scan produced.
type ScanResult struct {
	Snapshot *scanner.Snapshot
	Graph    *graph.Graph
	Cycles   [][]string
}

func NewApp(cfg *config.Config) (*App, error) {
	p := parser.NewParser(parser.NewGrammarLoader())
	p.RegisterExtractor("python", &parser.PythonExtractor{})

	s, err := scanner.New(cfg.Root, p, cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Scanner: s}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		a.store = store
	}

	return a, nil
}

func (a *App) Close(ctx context.Context) error {
	if a.obsServer != nil {
		if err := a.obsServer.Stop(ctx); err != nil {
			slog.Warn("failed to stop observability server", "error", err)
		}
	}
	return a.store.Close()
}

// RunScan performs one full scan, detects cycles, records metrics and
// history, and writes the configured output files.
func (a *App) RunScan(ctx context.Context) (ScanResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.RunScan", trace.WithAttributes(
		attribute.String("root", a.Config.Root),
	))
	defer span.End()

	snap, err := a.Scanner.Scan(ctx)
	if err != nil {
		return ScanResult{}, err
	}

	g := graph.Build(snap)
	cycles := g.DetectCycles()

	a.lastCycles = cycles
	a.lastScan = time.Now()

	observability.ScanDuration.Observe(snap.Duration.Seconds())
	observability.GraphModules.Set(float64(g.VertexCount()))
	observability.GraphEdges.Set(float64(g.EdgeCount()))
	observability.CyclesDetected.Set(float64(len(cycles)))
	observability.ParseFailuresTotal.Add(float64(snap.ParseFailures))
	observability.ScansTotal.Inc()

	span.SetAttributes(
		attribute.Int("modules", g.VertexCount()),
		attribute.Int("cycles", len(cycles)),
	)

	if err := a.GenerateOutputs(snap, g, cycles); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}

	if a.store != nil {
		_, err := a.store.SaveScan(history.ScanRecord{
			Root:          snap.Root,
			ModuleCount:   g.VertexCount(),
			EdgeCount:     g.EdgeCount(),
			CycleCount:    len(cycles),
			ParseFailures: snap.ParseFailures,
			Duration:      snap.Duration,
			Cycles:        cycles,
		})
		if err != nil {
			slog.Error("failed to save scan history", "error", err)
		}
	}

	return ScanResult{Snapshot: snap, Graph: g, Cycles: cycles}, nil
}

func (a *App) GenerateOutputs(snap *scanner.Snapshot, g *graph.Graph, cycles [][]string) error {
	if a.Config.Output.JSON != "" {
		doc := export.NewDocument(snap, cycles)
		if err := doc.WriteFile(a.Config.Output.JSON); err != nil {
			return err
		}
	}

	if a.Config.Output.DOT != "" {
		dotGen := output.NewDOTGenerator(snap, g)
		dot, err := dotGen.Generate(cycles)
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.DOT, []byte(dot), 0644); err != nil {
			return err
		}
	}

	if a.Config.Output.TSV != "" {
		tsvGen := output.NewTSVGenerator(snap, g)
		tsv, err := tsvGen.Generate(cycles)
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.TSV, []byte(tsv), 0644); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) PrintSummary(res ScanResult) {
	snap := res.Snapshot

	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Scanned %d files, %d modules in %v\n",
		snap.FileCount, snap.ModuleCount(), snap.Duration.Round(time.Millisecond))
	if snap.ParseFailures > 0 {
		fmt.Printf("Skipped %d unparseable files\n", snap.ParseFailures)
	}

	sorted := append([]string(nil), snap.Order...)
	sort.Strings(sorted)
	for _, fqn := range sorted {
		rec := snap.Modules[fqn]
		if len(rec.Imports) == 0 {
			fmt.Printf("%s: no imports\n", fqn)
			continue
		}
		fmt.Printf("%s: %s\n", fqn, strings.Join(rec.Imports, ", "))
	}

	fmt.Println(strings.Repeat("-", 40))
	if len(res.Cycles) > 0 {
		fmt.Printf("FOUND %d CIRCULAR IMPORTS:\n", len(res.Cycles))
		for _, c := range res.Cycles {
			fmt.Printf("   %s\n", strings.Join(c, " -> "))
		}
	} else {
		fmt.Println("No circular imports found.")
	}
}

func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))

	res, err := a.RunScan(context.Background())
	if err != nil {
		slog.Error("rescan failed", "error", err)
		return
	}

	if a.teaProgram != nil {
		a.teaProgram.Send(updateMsg{
			snapshot: res.Snapshot,
			cycles:   res.Cycles,
		})
		return
	}

	a.PrintSummary(res)
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce.Duration,
		a.Config.Watch.MinRescanInterval.Duration,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	// Runs for the process lifetime, no Close.
	return w.Watch(a.Config.Root)
}

func (a *App) StartObservability(ctx context.Context) error {
	if a.Config.Observability.MetricsAddr == "" {
		return nil
	}
	a.obsServer = observability.NewServer(a.Config.Observability.MetricsAddr, a.healthStatus)
	return a.obsServer.Start(ctx)
}

func (a *App) healthStatus(ctx context.Context) observability.HealthStatus {
	status := observability.HealthStatus{Status: "up"}

	snap := a.Scanner.Current()
	if snap == nil {
		status.Status = "starting"
		return status
	}

	status.Modules = snap.ModuleCount()
	status.Cycles = len(a.lastCycles)
	status.ParseFailures = snap.ParseFailures
	if !a.lastScan.IsZero() {
		status.LastScan = a.lastScan.UTC().Format(time.RFC3339)
	}
	return status
}
