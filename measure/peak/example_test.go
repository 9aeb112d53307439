package peak_test

import (
	"fmt"

	"github.com/cwbudde/algo-chaosfx/measure/peak"
)

func ExampleMeter() {
	m, err := peak.NewMeter(1000, peak.WithDecay(100))
	if err != nil {
		panic(err)
	}

	m.Update(1)

	for range 100 {
		m.Update(0)
	}

	fmt.Printf("%.3f\n", m.Value())
	// Output: 0.250
}
