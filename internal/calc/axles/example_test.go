package axles_test

import (
	"fmt"

	"Pavement/internal/calc/axles"
)

func ExampleNewVolumes() {
	vol, _ := axles.NewVolumes(7500, 2, 80)
	fmt.Printf("fcp %.2f, design lane %.0f, loaded %.2f, empty %.2f\n", vol.LaneFactor, vol.DesignLane, vol.Loaded, vol.Empty)
	// Output: fcp 0.45, design lane 3375, loaded 9855.00, empty 2463.75
}
