// Package devicesim runs a simulated DIAL device.
//
// The simulator serves a UPnP device description at DescriptorPath together
// with the Application-URL header, like a smart TV answering a DIAL client
// after SSDP discovery. Its Behavior can be switched at runtime, either with
// SetBehavior or with PUT /sim/behavior/{behavior}, to reproduce the ways
// real devices misbehave: missing header, non-200 status, broken XML,
// relative Application-URL.
//
// GET /livez reports the active behavior.
package devicesim
