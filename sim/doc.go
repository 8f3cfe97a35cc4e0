// Package sim provides the discrete-event simulation engine for a multi-pump fuel station.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - request.go: customer lifecycle (queued → in service → served, or lost)
//   - event.go: event types that drive the simulation (Arrival, ServiceStart, ServiceEnd, DayReport)
//   - simulator.go: the event loop and the per-event handlers
//
// # Architecture
//
// The Simulator owns the EventQueue and the Station. The Station owns a fixed,
// indexed set of Pumps, the price/markup/inventory tables, the Sampler and the
// AllocationPolicy. Events reference pumps by their stable integer ID, never by
// pointer, so an event can always be resolved (or rejected) against the station.
//
// Sub-packages:
//   - sim/trace/: allocation and loss decision records (pure data)
//   - sim/export/: Prometheus text-exposition export of a run Summary
//
// # Determinism
//
// All randomness flows through one RandomSource seeded from the SimulationKey and
// held by the Sampler. Events with identical timestamps execute in the order
// they were scheduled. The same Config and seed therefore produce a
// byte-identical sink trace.
package sim
