package sim

// PerformanceState is the lightweight, gradient-free belief over a car's
// latent performance. It predates the EKF calibrator and remains useful
// when the cost of six season Monte Carlo runs per update is not
// justified.
type PerformanceState struct {
	BaseSpeed     float64
	ERSEfficiency float64
	Reliability   float64
}

// Per-parameter sensitivity coefficients of the heuristic update rule.
const (
	baseSpeedSensitivity   = 0.01
	ersSensitivity         = 0.005
	reliabilitySensitivity = 0.001
)

// UpdatePerformanceState shifts the belief by the points error (observed
// minus expected) scaled by the learning rate and a per-parameter
// sensitivity coefficient. A positive error means the car outperformed
// expectations: base speed moves down (faster), ERS efficiency and
// reliability move up. Reliability is clamped to [0, 1]. The prior is
// never mutated.
func UpdatePerformanceState(prior PerformanceState, observedPoints, expectedPoints, learningRate float64) PerformanceState {
	err := observedPoints - expectedPoints
	return PerformanceState{
		BaseSpeed:     prior.BaseSpeed - learningRate*err*baseSpeedSensitivity,
		ERSEfficiency: prior.ERSEfficiency + learningRate*err*ersSensitivity,
		Reliability:   clamp01(prior.Reliability + learningRate*err*reliabilitySensitivity),
	}
}

// ApplyUpdatedState returns a new Car carrying the belief's performance
// parameters; non-performance attributes are unchanged.
func ApplyUpdatedState(car Car, state PerformanceState) Car {
	car.BaseSpeed = state.BaseSpeed
	car.ERSEfficiency = state.ERSEfficiency
	car.Reliability = state.Reliability
	return car
}
