// Package main (cmd/devicesim) serves a simulated DIAL device.
//
// Point dial-descriptor at the printed location to exercise every resolution
// branch without real hardware:
//
//	devicesim --listen-addr 127.0.0.1:8060 --friendly-name "Living Room TV"
//	dial-descriptor resolve http://127.0.0.1:8060/dd.xml
//
// The behavior can be switched while running:
//
//	curl -X PUT http://127.0.0.1:8060/sim/behavior/missing-header
package main
