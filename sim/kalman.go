package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Extended Kalman Filter calibrator for latent car performance.
//
// The state vector theta is [baseSpeed, ersEfficiency, reliability]; P is
// its 3x3 covariance. The scalar measurement is a driver's championship
// points, predicted by a seeded season Monte Carlo. Because that mapping
// is non-linear and itself stochastic, the measurement Jacobian H is
// estimated by central differences over Monte Carlo evaluations: this is
// a noisy-Jacobian EKF, not one with an analytic gradient. Matched seeds
// across the +/- evaluations keep each update deterministic, but H
// remains an approximation of the true gradient.

const kalmanStateDim = 3

// KalmanPerformanceState is the belief over one car's latent performance
// parameters. Updates never mutate the prior; each cycle returns a fresh
// state derived from it.
type KalmanPerformanceState struct {
	Theta *mat.VecDense // mean [baseSpeed, ersEfficiency, reliability]
	P     *mat.Dense    // covariance, 3x3
}

// Clone returns an independent copy of the state.
func (s *KalmanPerformanceState) Clone() *KalmanPerformanceState {
	theta := mat.NewVecDense(kalmanStateDim, nil)
	theta.CopyVec(s.Theta)
	p := mat.NewDense(kalmanStateDim, kalmanStateDim, nil)
	p.Copy(s.P)
	return &KalmanPerformanceState{Theta: theta, P: p}
}

// CovarianceTrace is the trace of P, the scalar summary used to check
// that a well-formed update never loses information.
func (s *KalmanPerformanceState) CovarianceTrace() float64 {
	return mat.Trace(s.P)
}

// InitializeKalmanState seeds a belief from a car's current parameters
// with fixed diagonal uncertainty: 0.10 on base speed, 0.05 on ERS
// efficiency, 0.01 on reliability.
func InitializeKalmanState(car Car) *KalmanPerformanceState {
	theta := mat.NewVecDense(kalmanStateDim, []float64{car.BaseSpeed, car.ERSEfficiency, car.Reliability})
	p := mat.NewDense(kalmanStateDim, kalmanStateDim, nil)
	p.Set(0, 0, 0.10)
	p.Set(1, 1, 0.05)
	p.Set(2, 2, 0.01)
	return &KalmanPerformanceState{Theta: theta, P: p}
}

// KalmanConfig bundles the tunables of one update cycle.
type KalmanConfig struct {
	LapsPerRace         int
	MeasurementVariance float64 // scalar observation noise R
	GradientSeasons     int     // Monte Carlo replications per +/- evaluation
	GradientDelta       float64 // finite-difference step
	BaseSeed            int64
	NoiseStd            float64
}

// DefaultKalmanConfig mirrors the reference tuning: R=10, 100 gradient
// seasons, delta=1e-3.
func DefaultKalmanConfig(lapsPerRace int, baseSeed int64) KalmanConfig {
	return KalmanConfig{
		LapsPerRace:         lapsPerRace,
		MeasurementVariance: 10.0,
		GradientSeasons:     100,
		GradientDelta:       1e-3,
		BaseSeed:            baseSeed,
		NoiseStd:            0.05,
	}
}

// teamFromTheta rebuilds the team with car parameters taken from theta,
// clamping the bounded entries so intermediate gradient evaluations stay
// constructible.
func teamFromTheta(team *Team, theta *mat.VecDense) (*Team, error) {
	car := team.Car
	car.BaseSpeed = theta.AtVec(0)
	car.ERSEfficiency = clamp01(theta.AtVec(1))
	car.Reliability = clamp01(theta.AtVec(2))
	return NewTeam(team.Name, car, team.Drivers)
}

func clamp01(v float64) float64 { return math.Min(1.0, math.Max(0.0, v)) }

// ApplyKalmanStateToTeam returns a new Team whose car carries the belief
// mean. Parameters the filter does not track (aero efficiency, tyre wear
// rate) are carried forward unchanged.
func ApplyKalmanStateToTeam(state *KalmanPerformanceState, team *Team) (*Team, error) {
	return teamFromTheta(team, state.Theta)
}

// ComputeMeasurementGradient estimates the 1x3 Jacobian of expected
// championship points w.r.t. theta by central differences: each of the
// three parameters is perturbed by +/- delta, the team rebuilt, and a
// small season Monte Carlo evaluated with a matched seed for the + and -
// sides.
func ComputeMeasurementGradient(team *Team, driverName string, calendar []Track, otherTeams []*Team, cfg KalmanConfig) (*mat.Dense, error) {
	theta := []float64{team.Car.BaseSpeed, team.Car.ERSEfficiency, team.Car.Reliability}
	h := mat.NewDense(1, kalmanStateDim, nil)

	for i := 0; i < kalmanStateDim; i++ {
		thetaPlus := append([]float64(nil), theta...)
		thetaMinus := append([]float64(nil), theta...)
		thetaPlus[i] += cfg.GradientDelta
		thetaMinus[i] -= cfg.GradientDelta

		ptsPlus, err := expectedPointsAt(team, driverName, calendar, otherTeams, thetaPlus, cfg)
		if err != nil {
			return nil, err
		}
		ptsMinus, err := expectedPointsAt(team, driverName, calendar, otherTeams, thetaMinus, cfg)
		if err != nil {
			return nil, err
		}
		h.Set(0, i, (ptsPlus-ptsMinus)/(2.0*cfg.GradientDelta))
	}
	return h, nil
}

func expectedPointsAt(team *Team, driverName string, calendar []Track, otherTeams []*Team, theta []float64, cfg KalmanConfig) (float64, error) {
	perturbed, err := teamFromTheta(team, mat.NewVecDense(kalmanStateDim, theta))
	if err != nil {
		return 0, err
	}
	field := append([]*Team{perturbed}, otherTeams...)
	dist, err := SimulateSeasonMonteCarlo(calendar, field, cfg.LapsPerRace, cfg.GradientSeasons, cfg.BaseSeed, cfg.NoiseStd)
	if err != nil {
		return 0, err
	}
	return dist.ExpectedDriverPoints[driverName], nil
}

// KalmanUpdate fuses one observation (points actually scored) into the
// belief. The cycle is innovation, numerical Jacobian, scalar innovation
// covariance S = H P Ht + R, gain K = P Ht / S, mean and covariance
// update, then clamping of the bounded parameters. A degenerate |S| <
// 1e-15 short-circuits to the unchanged prior.
func KalmanUpdate(state *KalmanPerformanceState, team *Team, driverName string, observedPoints, expectedPoints float64, calendar []Track, otherTeams []*Team, cfg KalmanConfig) (*KalmanPerformanceState, error) {
	if cfg.MeasurementVariance < 0 {
		return nil, fmt.Errorf("measurement variance must be >= 0, got %v", cfg.MeasurementVariance)
	}

	// 1. Innovation.
	y := observedPoints - expectedPoints

	// 2. Measurement Jacobian H (1x3), Monte Carlo central differences.
	h, err := ComputeMeasurementGradient(team, driverName, calendar, otherTeams, cfg)
	if err != nil {
		return nil, err
	}

	// 3. Innovation covariance S = H P Ht + R (scalar).
	var pht mat.Dense // P Ht, 3x1
	pht.Mul(state.P, h.T())
	var hpht mat.Dense // H P Ht, 1x1
	hpht.Mul(h, &pht)
	s := hpht.At(0, 0) + cfg.MeasurementVariance

	if math.Abs(s) < 1e-15 {
		logrus.Debugf("kalman update for %q: degenerate innovation covariance, keeping prior", team.Name)
		return state.Clone(), nil
	}

	// 4. Gain K = P Ht / S (3x1).
	var k mat.Dense
	k.Scale(1.0/s, &pht)

	// 5. Mean update theta' = theta + K y.
	theta := mat.NewVecDense(kalmanStateDim, nil)
	theta.CopyVec(state.Theta)
	for i := 0; i < kalmanStateDim; i++ {
		theta.SetVec(i, theta.AtVec(i)+k.At(i, 0)*y)
	}

	// 6. Covariance update P' = (I - K H) P.
	var kh mat.Dense // 3x3
	kh.Mul(&k, h)
	ikh := identity(kalmanStateDim)
	ikh.Sub(ikh, &kh)
	pNew := mat.NewDense(kalmanStateDim, kalmanStateDim, nil)
	pNew.Mul(ikh, state.P)

	// 7. Clamp the bounded parameters of the mean.
	theta.SetVec(1, clamp01(theta.AtVec(1)))
	theta.SetVec(2, clamp01(theta.AtVec(2)))

	return &KalmanPerformanceState{Theta: theta, P: pNew}, nil
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1.0)
	}
	return m
}
