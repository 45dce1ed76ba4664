// Package services implements the driving ports. It contains the core
// trigger logic: the rearmable quiz timer, the note-change monitor and
// the settings service. Services depend only on ports and domain.
package services
