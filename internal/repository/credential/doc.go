// Package credential implements the byte-addressed persistent store that
// holds the access code on the Control node.
//
// FileStore keeps a fixed-size image on disk, the stand-in for the external
// EEPROM; MemoryStore is an in-memory image with injectable read faults.
// Both satisfy Store, which the Control phase machine depends on.
package credential
