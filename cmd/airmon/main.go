package main

import (
	"flag"
	"net/url"
	"os"
	"strings"

	"github.com/golang/glog"

	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/link/mqtt"
	"github.com/robotalks/airmouse/pkg/link/msgs"
)

var (
	mqttURL   = "mqtt://localhost:1883/airmouse/"
	codecName = msgs.CodecJSON
)

func init() {
	if val := os.Getenv("AIRMOUSE_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&codecName, "codec", codecName, "Codec of device messages: json or proto.")
}

func main() {
	flag.Parse()

	u, err := url.Parse(mqttURL)
	if err != nil {
		glog.Exitf("invalid MQTT URL: %v", err)
	}
	codec, err := msgs.CodecByName(codecName)
	if err != nil {
		glog.Exit(err)
	}
	opts, prefix := mqtt.ClientOptionsFromURL(u)
	if opts.ClientID == "" {
		opts.SetClientID("airmon-" + strings.Replace(u.Host, ":", "-", -1))
	}
	q := mqtt.NewQueue(opts, prefix)
	q.OnConnect = func(*mqtt.Queue, error) {
		glog.Infof("connected to %s", u.Host)
	}
	q.OnDisconnect = func(_ *mqtt.Queue, err error) {
		glog.Warningf("disconnected from %s: %v", u.Host, err)
	}
	q.Sub("+/"+mqtt.TopicMeta, func(topic string, payload []byte) {
		if len(payload) == 0 {
			glog.Infof("%s: gone", topic)
			return
		}
		glog.Infof("%s: %s", topic, payload)
	})
	q.Sub("+/"+mqtt.TopicMsg, func(topic string, payload []byte) {
		msg, err := codec.Decode(payload)
		if err != nil {
			glog.Warningf("%s: bad message: %v", topic, err)
			return
		}
		glog.Infof("%s: [%s] %+v", topic, msg.MsgType(), msg)
	})
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		glog.Exitf("connect %s: %v", mqttURL, token.Error())
	}
	defer q.Close()

	runner := fx.NewRunner().HandleSignals()
	<-runner.Context.Done()
}
