// Package finding provides the core data model for OSINT scan findings:
// the raw Record consumed from the scanning engine, the Category and
// Severity enumerations, and the static rule tables that map engine event
// types onto them.
//
// Records are treated as immutable, read-only input everywhere downstream.
// The rule tables are the single source of truth for classification policy;
// no other package branches on event type strings directly.
package finding
