package sim

import "fmt"

// LapTime computes the deterministic lap time in seconds for a car on a
// track at a given tyre age and ERS deploy level.
//
// The formula combines four components:
//
//	base  = car.BaseSpeed
//	aero  = track.DownforceSensitivity * (1 - car.AeroEfficiency)
//	tyre  = tyreAge * track.TyreDegradationFactor * car.TyreWearRate
//	ers   = deployLevel * car.ERSEfficiency
//
//	lapTime = base + aero + tyre - ers
//
// It is the pure cost primitive under every other component: the stint
// simulator, the race engine, and the DP optimizer all bottom out here.
func LapTime(track Track, car Car, tyreAge float64, deployLevel float64) (float64, error) {
	if tyreAge < 0 {
		return 0, fmt.Errorf("tyre age must be >= 0, got %v", tyreAge)
	}
	if deployLevel < 0 || deployLevel > 1 {
		return 0, fmt.Errorf("deploy level must be in [0, 1], got %v", deployLevel)
	}

	base := car.BaseSpeed
	aero := track.DownforceSensitivity * (1.0 - car.AeroEfficiency)
	tyre := tyreAge * track.TyreDegradationFactor * car.TyreWearRate
	ers := deployLevel * car.ERSEfficiency

	return base + aero + tyre - ers, nil
}
