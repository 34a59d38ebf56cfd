package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/airmouse/pkg/env"
	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/receiver"
)

//go-build: CGO_ENABLED=0

var configFile string

type fileConfig struct {
	Receiver *receiver.Config `yaml:"receiver"`
}

func init() {
	flag.StringVar(&configFile, "config", configFile, "YAML config file, flags take precedence.")
	receiver.SetupFlags()
}

func main() {
	flag.Parse()

	if err := env.LoadFile(flag.CommandLine, configFile, &fileConfig{Receiver: receiver.Default()}); err != nil {
		glog.Exit(err)
	}
	srv, err := receiver.Default().NewServer()
	if err != nil {
		glog.Exit(err)
	}
	glog.Infof("air mouse receiver on %s%s, acceleration %.1fx", receiver.LocalIP(), srv.Addr, srv.Acceleration)
	glog.Infof("point devices at -link ws://%s%s/", receiver.LocalIP(), srv.Addr)

	err = fx.NewRunner().HandleSignals().
		Go(fx.NamedRun("receiver", srv), fx.NamedRun("stats", fx.RunFunc(srv.RunStats))).
		Wait()
	if err != nil {
		glog.Exit(err)
	}
}
