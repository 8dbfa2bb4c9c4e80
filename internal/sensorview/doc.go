// Package sensorview defines the sensor view configuration exchanged during
// negotiation between a sensor model and the environment simulator.
//
// A sensor model sends a requested SensorViewConfiguration listing what it
// would like to receive. The simulator answers with a granted configuration
// of the same shape holding only what it will actually provide. The same
// types serve both directions; only the population rules differ:
//
//   - requested preference lists (camera channel formats) may hold several
//     entries, most preferred first;
//   - granted preference lists hold exactly one entry, or none when no
//     acceptable option exists;
//   - an unpopulated (nil) field means "not specified" in a request and
//     "cannot provide" in a grant, never zero.
//
// One virtual sensor may be backed by several physical detectors of mixed
// or repeated technology, so each technology has its own slice rather than
// a single union.
package sensorview
