// Package negotiate resolves a sensor model's requested sensor view
// configuration against what the simulator can provide.
//
// Resolution never fails. A field the simulator cannot satisfy is left
// unpopulated in the grant, a preference list with no acceptable entry is
// granted empty, and a technology the simulator does not model is dropped.
// Whether any of that is fatal is the sensor model's decision.
//
// Resolving an already granted configuration with the same capability
// returns it unchanged.
package negotiate
