// Package sim is the championship forecasting core: a seeded, per-lap
// race state machine, Monte Carlo aggregation over races and seasons,
// pit-strategy optimizers, and calibration of latent car performance.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - physics.go: the deterministic lap-time primitive everything costs with
//   - race.go: the per-lap state machine (energy, tyres, noise, hazard,
//     pit stops, overtaking, safety car)
//   - montecarlo.go / season.go: seeded replication and aggregation into
//     probability distributions
//
// # Layers
//
// Value objects (Track, Car, Driver, Team, Strategy, Compound) are
// immutable, validated at construction, and shared read-only across
// replications. EnergyState and TyreState are mutable and owned by one
// replication. Strategy optimizers live in stint.go (grid search) and
// pitdp.go (backward-induction DP). sensitivity.go and kalman.go sit on
// top of the season aggregator.
//
// # Reproducibility
//
// Every replication derives all randomness from a caller-supplied
// SimulationKey feeding an independent math/rand generator (rng.go).
// Repeated runs with the same key and inputs are bit-identical. The draw
// order inside a lap is pinned; changing it is a breaking change to every
// recorded distribution.
package sim
