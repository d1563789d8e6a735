package config

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// ApplyAdaptiveThreads resolves Threads == 0 to one worker per logical CPU.
// Explicit values are kept.
func ApplyAdaptiveThreads(cfg AppConfig) AppConfig {
	if cfg.Threads == 0 {
		cfg.Threads = runtime.NumCPU()
	}
	return cfg
}

// CPUFeatures lists the SIMD extensions relevant to float64 throughput that
// the running CPU supports, e.g. "AVX2 FMA".
func CPUFeatures() string {
	var features []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			ok   bool
		}{
			{"SSE4.1", cpu.X86.HasSSE41},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"FMA", cpu.X86.HasFMA},
			{"AVX-512F", cpu.X86.HasAVX512F},
		} {
			if f.ok {
				features = append(features, f.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			features = append(features, "ASIMD")
		}
		if cpu.ARM64.HasFPHP {
			features = append(features, "FPHP")
		}
		if cpu.ARM64.HasSVE {
			features = append(features, "SVE")
		}
	}
	if len(features) == 0 {
		return "none detected"
	}
	return strings.Join(features, " ")
}
