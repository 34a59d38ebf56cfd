package main

import (
	"context"
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/airmouse/pkg/button"
	"github.com/robotalks/airmouse/pkg/cli/sh"
	"github.com/robotalks/airmouse/pkg/device"
	"github.com/robotalks/airmouse/pkg/env"
	"github.com/robotalks/airmouse/pkg/joystick"
	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/motion"
	"github.com/robotalks/airmouse/pkg/sim"
)

//go-build: CGO_ENABLED=0

var (
	configFile string
	gyroNoise  int
)

type fileConfig struct {
	Env      *env.Config      `yaml:"env"`
	Device   *device.Config   `yaml:"device"`
	Motion   *motion.Config   `yaml:"motion"`
	Button   *button.Config   `yaml:"button"`
	Link     *link.Config     `yaml:"link"`
	Joystick *joystick.Config `yaml:"joystick"`
}

func init() {
	flag.StringVar(&configFile, "config", configFile, "YAML config file, flags take precedence.")
	flag.IntVar(&gyroNoise, "gyro-noise", gyroNoise, "Max uniform noise added to each simulated gyro axis.")
	env.SetupFlags()
	device.SetupFlags()
	motion.SetupFlags()
	button.SetupFlags()
	link.SetupFlags()
	joystick.SetupFlags()
}

func main() {
	flag.Parse()

	confs := device.DefaultConfigs()
	file := fileConfig{
		Env:      env.Default(),
		Device:   confs.Device,
		Motion:   confs.Motion,
		Button:   confs.Button,
		Link:     confs.Link,
		Joystick: joystick.Default(),
	}
	if err := env.LoadFile(flag.CommandLine, configFile, &file); err != nil {
		glog.Exit(err)
	}
	if err := confs.Validate(); err != nil {
		glog.Exitf("invalid config: %v", err)
	}
	l, err := env.Default().NewLink()
	if err != nil {
		glog.Exit(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	shell := sh.New(ctx, nil)
	bench := sim.NewBench(confs, l.NewManager(confs.Link), shell)
	bench.Gyro.Noise = gyroNoise
	shell.Bench = bench
	if js := joystick.Default(); js.Enabled {
		bench.Loop.AddRunnable(js.NewDriver(bench.Gyro, bench.Button))
	}
	go bench.Loop.RunOrFail(ctx)

	shell.Run(flag.Args()...)
}
