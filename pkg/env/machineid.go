package env

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID scopes the protected machine ID to this application.
const AppID = "airmouse"

// MachineID retrieves an ID identifying the machine. It is hashed with
// AppID so the raw machine ID never leaves the device. Empty if the
// platform offers none.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return ""
	}
	return id
}

// DefaultDeviceName derives a device identifier from the machine ID.
func DefaultDeviceName(machineID string) string {
	const prefixLen = 8
	if machineID == "" {
		return "AirMouse"
	}
	if len(machineID) > prefixLen {
		machineID = machineID[:prefixLen]
	}
	return "AirMouse-" + machineID
}
