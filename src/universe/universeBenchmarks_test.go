package universe

import (
	"testing"
)

func simulationStep(u *Simulation, b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		u.SettleWithRandomData(0.3)
		b.StartTimer()
		u.Tick()
	}
	u.Close()
}

func Benchmark_Step(b *testing.B) {
	for _, e := range Evaluations() {
		b.Run(e, func(b *testing.B) {
			simulationStep(newTestSimulation(e), b)
		})
	}
}

func Benchmark_Evaluator(b *testing.B) {
	for _, e := range Evaluations() {
		b.Run(e, func(b *testing.B) {
			evaluate, _ := EvaluatorByName(e)
			g := NewGrid()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				g.Clear()
				for _, s := range BuiltinTemplates[2].Seeds {
					g.SetColor(s.Row, s.Col, s.Color)
				}
				b.StartTimer()
				evaluate(g)
			}
		})
	}
}
