//go:build linux

package joystick

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

const iocGNAME uint = 0x80ff6a13

// linux joystick API js_event
type jsEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

type linuxDevice struct {
	file  *os.File
	index int
	name  string
}

// Open opens /dev/input/js<index>.
func Open(index int) (Device, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/input/js%d", index), os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	d := &linuxDevice{file: f, index: index}
	var buf [256]byte
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(iocGNAME), uintptr(unsafe.Pointer(&buf)))
	if errno != 0 {
		f.Close()
		return nil, errno
	}
	if pos := bytes.IndexByte(buf[:], 0); pos >= 0 {
		d.name = string(buf[:pos])
	} else {
		d.name = string(buf[:])
	}
	return d, nil
}

// Detect opens the first available joystick. nil if there is none.
func Detect() (Device, error) {
	for index := 0; index < 32; index++ {
		d, err := Open(index)
		if os.IsNotExist(err) {
			continue
		}
		return d, err
	}
	return nil, nil
}

func (d *linuxDevice) Close() error { return d.file.Close() }
func (d *linuxDevice) Index() int   { return d.index }
func (d *linuxDevice) Name() string { return d.name }

func (d *linuxDevice) ReadEvent() (Event, error) {
	var ev jsEvent
	if err := binary.Read(d.file, binary.LittleEndian, &ev); err != nil {
		return Event{}, err
	}
	return Event{Type: EventType(ev.Type), Number: int(ev.Number), Value: int(ev.Value)}, nil
}
