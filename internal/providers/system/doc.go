// Package system provides the "system" service: host details, open word
// processor windows, automation counters and a bounded run log that
// scripts write to with system.log.
package system
