// Package main (cmd/dial-descriptor) resolves DIAL device descriptors from the
// command line.
//
// Commands:
//
//	resolve   - fetch each location in turn; exits non-zero if any location
//	            could not be fetched or was invalid
//	sweep     - fetch all locations in parallel and report every outcome
//
// Each location produces one JSON line on stdout:
//
//	{"location":"http://192.168.1.20:8008/ssdp/device-desc.xml","found":true,
//	 "application_url":"http://192.168.1.20:8008/apps/","friendly_name":"Living Room TV","status":200}
//
// Absent descriptors carry "absence_reason" (unsupported-scheme,
// unexpected-status, missing-application-url), failures carry "error".
// Logs go to stderr.
package main
