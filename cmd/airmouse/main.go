package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/airmouse/pkg/button"
	"github.com/robotalks/airmouse/pkg/device"
	"github.com/robotalks/airmouse/pkg/env"
	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/motion"
	"github.com/robotalks/airmouse/pkg/motion/mpu9250"
)

//go-build: CGO_ENABLED=0

var configFile string

type fileConfig struct {
	Env    *env.Config     `yaml:"env"`
	IMU    *mpu9250.Config `yaml:"imu"`
	Device *device.Config  `yaml:"device"`
	Motion *motion.Config  `yaml:"motion"`
	Button *button.Config  `yaml:"button"`
	Link   *link.Config    `yaml:"link"`
}

func init() {
	flag.StringVar(&configFile, "config", configFile, "YAML config file, flags take precedence.")
	env.SetupFlags()
	mpu9250.SetupFlags()
	device.SetupFlags()
	motion.SetupFlags()
	button.SetupFlags()
	link.SetupFlags()
}

func main() {
	flag.Parse()

	confs := device.DefaultConfigs()
	file := fileConfig{
		Env:    env.Default(),
		IMU:    mpu9250.Default(),
		Device: confs.Device,
		Motion: confs.Motion,
		Button: confs.Button,
		Link:   confs.Link,
	}
	if err := env.LoadFile(flag.CommandLine, configFile, &file); err != nil {
		glog.Exit(err)
	}
	if err := confs.Validate(); err != nil {
		glog.Exitf("invalid config: %v", err)
	}

	imu, err := mpu9250.Default().Open()
	if err != nil {
		glog.Exitf("sensor bring-up failed: %v", err)
	}
	btn, err := button.Default().Open()
	if err != nil {
		glog.Exitf("button setup failed: %v", err)
	}
	l, err := env.Default().NewLink()
	if err != nil {
		glog.Exit(err)
	}
	glog.Infof("device %q linking to %s", l.Device, env.Default().LinkURL)

	dev := confs.NewDevice(device.Parts{
		Motion: imu,
		Button: btn,
		Link:   l.NewManager(confs.Link),
	})
	loop := fx.NewLoop()
	loop.Interval = confs.Device.TickInterval
	loop.Add(dev).RunOrFail(fx.NewRunner().HandleSignals().Context)
}
