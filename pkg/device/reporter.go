package device

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/airmouse/pkg/motion"
)

// NoticeKind classifies user feedback.
type NoticeKind int

// Notice kinds
const (
	NoticeArmed NoticeKind = iota
	NoticeDisarmed
	NoticeNotCalibrated
	NoticeCalibrated
	NoticeCalibrationFailed
	NoticeClicked
	NoticeClickFailed
)

var noticeNames = map[NoticeKind]string{
	NoticeArmed:             "armed",
	NoticeDisarmed:          "disarmed",
	NoticeNotCalibrated:     "not calibrated",
	NoticeCalibrated:        "calibrated",
	NoticeCalibrationFailed: "calibration failed",
	NoticeClicked:           "clicked",
	NoticeClickFailed:       "click failed",
}

// String implements fmt.Stringer.
func (k NoticeKind) String() string {
	if name, ok := noticeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("notice(%d)", int(k))
}

// Notice is feedback for the user about a button action.
type Notice struct {
	Kind   NoticeKind
	Offset motion.Offset
	Err    error
}

// String implements fmt.Stringer.
func (n Notice) String() string {
	switch {
	case n.Err != nil:
		return fmt.Sprintf("%s: %v", n.Kind, n.Err)
	case n.Kind == NoticeCalibrated:
		return fmt.Sprintf("%s, offset %s", n.Kind, n.Offset)
	}
	return n.Kind.String()
}

// Reporter is the local status channel.
type Reporter interface {
	Report(Notice)
}

// ReporterFunc is the func form of Reporter.
type ReporterFunc func(Notice)

// Report implements Reporter.
func (f ReporterFunc) Report(n Notice) {
	f(n)
}

// LogReporter writes notices to the log.
type LogReporter struct{}

// Report implements Reporter.
func (LogReporter) Report(n Notice) {
	if n.Err != nil || n.Kind == NoticeNotCalibrated {
		glog.Warning(n)
		return
	}
	glog.Info(n)
}
