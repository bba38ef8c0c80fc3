package status

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/bowerhall/ollamagram/internal/ollama"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type Catalog interface {
	List(ctx context.Context) ([]ollama.ModelInfo, error)
}

// Reporter builds the /status text: host resources plus backend
// reachability. Read-only, no state.
type Reporter struct {
	catalog Catalog
}

func NewReporter(catalog Catalog) *Reporter {
	return &Reporter{catalog: catalog}
}

func (r *Reporter) Report(ctx context.Context) string {
	hostname, _ := os.Hostname()

	var b strings.Builder
	fmt.Fprintf(&b, "Host: %s (%s/%s)\n", hostname, runtime.GOOS, runtime.GOARCH)

	cpuPercent, err := cpu.Percent(time.Second, false)
	if err == nil && len(cpuPercent) > 0 {
		fmt.Fprintf(&b, "CPU: %.1f%%\n", cpuPercent[0])
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(&b, "Memory: %.1f%% of %s\n", memInfo.UsedPercent, formatBytes(memInfo.Total))
	}

	if diskInfo, err := disk.Usage("/"); err == nil {
		fmt.Fprintf(&b, "Disk: %s free\n", formatBytes(diskInfo.Free))
	}

	models, err := r.catalog.List(ctx)
	if err != nil {
		b.WriteString("Backend: unreachable")
	} else {
		fmt.Fprintf(&b, "Backend: ok, %d models", len(models))
	}

	return b.String()
}

func formatBytes(n uint64) string {
	const gib = 1024 * 1024 * 1024
	if n >= gib {
		return fmt.Sprintf("%.1f GiB", float64(n)/gib)
	}

	return fmt.Sprintf("%.1f MiB", float64(n)/(1024*1024))
}
