// Copyright 2025 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// bounce-demo runs the ball simulation headlessly and writes one PNG per
// rendered frame, using the software rasterizer.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"honnef.co/go/bounce"
	"honnef.co/go/bounce/engine/swshade"
	"honnef.co/go/bounce/gfx"
	"honnef.co/go/bounce/physics"
	"honnef.co/go/bounce/profiler"
	"honnef.co/go/bounce/renderer"
	"honnef.co/go/bounce/sim"
	"honnef.co/go/curve"
)

func main() {
	var (
		configPath string
		out        string
		frames     int
		verbose    bool
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-v] [-config <file>] [-frames <n>] -out <dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&configPath, "config", "", "Path to yaml config `file`")
	flag.StringVar(&out, "out", "./out", "Path to output `directory`")
	flag.IntVar(&frames, "frames", 300, "Number of frames to render")
	flag.BoolVar(&verbose, "v", false, "Be verbose")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := sim.LoadConfig(configPath)
	if err != nil {
		slog.Error("couldn't load config", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(out, 0777); err != nil {
		slog.Error("couldn't create output directory", "err", err)
		os.Exit(1)
	}

	if err := run(cfg, out, frames, logger); err != nil {
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg sim.Config, out string, frames int, logger *slog.Logger) error {
	world := buildScene(cfg)

	sys := physics.NewSystem()
	sys.Gravity = curve.Vec(cfg.Gravity[0], cfg.Gravity[1])
	sys.Iterations = cfg.Iterations
	sys.SleepSpeed = cfg.SleepSpeed
	sys.AirDamping = cfg.AirDamping

	now := time.Now()
	clock := sim.NewClock(now, cfg.Timestep())
	stats := sim.NewFrameStats(now)

	sw := swshade.New()
	var dl renderer.DisplayList
	params := renderer.RenderParams{
		BaseColor: gfx.SRGB(0, 0, 0),
		Width:     uint32(cfg.Width),
		Height:    uint32(cfg.Height),
	}

	var pgroup profiler.ProfilerGroup = profiler.Noop()
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		pgroup = profiler.Log(logger)
	}

	// Headless, so frames are presented on the simulation's own clock:
	// every frame advances wall time by one timestep.
	for frame := range frames {
		now = now.Add(cfg.Timestep())
		steps, _, _ := clock.Tick(now)
		for range steps {
			sys.Step(world, cfg.Timestep())
		}
		stats.RecordSteps(steps)

		dl.Reset()
		dl.Append(world)
		img := sw.Render(&dl, &params, pgroup)
		stats.RecordRender()
		stats.RecordFrame(cfg.Timestep())
		if stats.NeedsUpdate(now) {
			stats.Update(now)
			logger.Info("frame stats",
				"avg_ms", stats.AvgFrameTimeMS,
				"sim_tps", stats.SimTPS,
				"render_fps", stats.RenderFPS)
		}
		swshade.DrawOverlay(img, stats.String())

		path := filepath.Join(out, fmt.Sprintf("frame%04d.png", frame))
		if err := writePNG(path, img); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("couldn't create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("couldn't encode %s: %w", path, err)
	}
	return f.Close()
}

func buildScene(cfg sim.Config) *bounce.World {
	world := bounce.NewWorld()

	// Static floor.
	world.Add(bounce.NewRectangle(curve.Point{Y: -0.9}, 1.8, 0.1, gfx.SRGB(0.3, 0.3, 0.35)).
		WithBody(bounce.NewStaticBody()))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	for range cfg.Balls {
		x := rng.Float64()*1.6 - 0.8
		y := rng.Float64()*0.8 + 0.1
		radius := rng.Float64()*0.06 + 0.04
		c := gfx.SRGB(rng.Float64(), rng.Float64(), rng.Float64())
		body := bounce.NewBody().WithVelocity(curve.Vec(rng.Float64()*0.4-0.2, 0))
		body.Restitution = cfg.Restitution
		world.Add(bounce.NewCircle(curve.Point{X: x, Y: y}, radius, c).
			WithBody(body).
			WithClick(bounce.NewClick()))
	}

	world.Add(bounce.NewLabel(curve.Point{X: -0.95, Y: 0.95}, "bounce", 24, gfx.SRGB(1, 1, 0.6)))

	return world
}
