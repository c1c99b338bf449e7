// Package control implements the fixed-wing control laws: the saturated
// cascaded PID loops (course, roll, pitch, airspeed-via-throttle, altitude),
// the per-flight-phase handlers that compose them into actuator commands, and
// the altitude-zone sequencer that selects the active phase.
//
// The loop structure and numerics follow upstream rosplane's
// controller_example, including its anti-windup back-calculation and
// dirty-derivative filtering.
package control
