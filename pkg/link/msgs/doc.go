// Package msgs defines the messages exchanged between the pointer
// device and the host receiver.
//
// Device to host: status, move, command.
// Host to device: welcome, response.
//
// Every message is a flat object tagged by "type". Two encodings are
// supported: JSON text (the default on every link) and a compact
// protobuf envelope.
package msgs
