package universe

import "math/rand"

//Source supplies uniform random values in [0,1)
//*rand.Rand satisfies it, so seeded generators can be injected directly
type Source interface {
	Float64() float64
}

//SourceFunc adapts a plain function to the Source interface
type SourceFunc func() float64

func (f SourceFunc) Float64() float64 {
	return f()
}

//globalSource reads the process-wide math/rand generator
type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

//DefaultSource is used when a Universe is created without a Source
var DefaultSource Source = globalSource{}

//NewSeededSource returns a deterministic Source for the given seed
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
