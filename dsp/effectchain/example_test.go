package effectchain_test

import (
	"fmt"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/dsp/effectchain"
	"github.com/cwbudde/algo-chaosfx/dsp/param"
)

func ExampleChain() {
	chain, err := effectchain.New(48000, effectchain.WithMaxChannels(1))
	if err != nil {
		panic(err)
	}

	b, err := buffer.FromChannels([][]float32{{0, 0.5, -0.5, 0}})
	if err != nil {
		panic(err)
	}

	// Drive 1 with both chaotic stages off is a plain tanh.
	blockPeak, err := chain.Process(b, param.Fixed{Gain: 1, Drive: 1})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.4f %.4f\n", blockPeak, chain.Meter().Value())
	// Output: 0.4621 0.4621
}
