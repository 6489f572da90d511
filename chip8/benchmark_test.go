package chip8

import (
	"testing"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
)

// spinner draws and erases a glyph forever, keeping the display busy.
var spinner = []uint16{
	0xA000, // LD I, glyph 0
	0x6010, // LD V0, 16
	0x6108, // LD V1, 8
	0xD015, // DRW V0, V1, 5
	0x7001, // ADD V0, 1
	0x1206, // JP 0x206
}

func BenchmarkMachineHeadless(b *testing.B) {
	cases := []struct {
		name   string
		ips    int
		frames int
	}{
		{"default_rate_60", 700, 60},
		{"fast_rate_600", 10000, 600},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			m, err := New(Config{InstructionsPerSecond: tc.ips})
			if err != nil {
				b.Fatalf("Failed to create machine: %v", err)
			}
			if err := m.LoadProgram(program(spinner...)); err != nil {
				b.Fatalf("Failed to load program: %v", err)
			}

			// Use large frame count to avoid the quit event
			hBackend := headless.New(tc.frames*(b.N+1), headless.SnapshotConfig{})
			if err := hBackend.Init(backend.BackendConfig{Title: "Benchmark"}); err != nil {
				b.Fatalf("Failed to initialize backend: %v", err)
			}
			defer hBackend.Cleanup()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for f := 0; f < tc.frames; f++ {
					if err := m.RunUntilFrame(); err != nil {
						b.Fatalf("Frame %d failed: %v", f, err)
					}
					if _, err := hBackend.Update(m.GetCurrentFrame()); err != nil {
						b.Fatalf("Update failed: %v", err)
					}
				}
			}
			b.ReportMetric(float64(m.GetInstructionCount())/float64(b.N), "instructions/op")
		})
	}
}

func BenchmarkCPUStep(b *testing.B) {
	m, err := New(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	if err := m.LoadProgram(program(spinner...)); err != nil {
		b.Fatal(err)
	}
	c := m.GetCPU()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
