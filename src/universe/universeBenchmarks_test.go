package universe

import (
	"testing"
)

var (
	testTemplate = Template{"ts1", "", [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}}

	benchSizes = []struct {
		name          string
		width, height uint32
	}{
		{"64x64", 64, 64},
		{"200x200", 200, 200},
		{"1024x512", 1024, 512},
	}
)

func Benchmark_Tick(b *testing.B) {
	for _, s := range benchSizes {
		b.Run(s.name, func(b *testing.B) {
			u := NewSized(s.width, s.height, NewSeededSource(1))
			u.FillRandom(DefDensity)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Tick()
			}
		})
	}
}

func Benchmark_TickTemplate(b *testing.B) {
	u := NewSized(200, 200, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		u.Settle(testTemplate, 0, 0)
		b.StartTimer()
		u.Tick()
	}
}

func Benchmark_Render(b *testing.B) {
	u := New(NewSeededSource(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = u.Render()
	}
}
