package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/urfave/cli"
)

// SystemInfo describes the machine frames are rendered on.
type SystemInfo struct {
	CPUModel  string
	ClockGHz  float64
	NumCPU    int
	TotalRAM  uint64
	Available uint64
}

func collectSystemInfo() (SystemInfo, error) {
	info := SystemInfo{NumCPU: runtime.NumCPU()}

	cpuInfo, err := cpu.Info()
	if err != nil {
		return info, fmt.Errorf("cpu info: %w", err)
	}
	if len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
		info.ClockGHz = cpuInfo[0].Mhz / 1000
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return info, fmt.Errorf("memory info: %w", err)
	}
	info.TotalRAM = memInfo.Total
	info.Available = memInfo.Available
	return info, nil
}

// Display host details relevant to render throughput.
func ShowSystemInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	info, err := collectSystemInfo()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.Append([]string{"CPU", info.CPUModel})
	table.Append([]string{"Clock", fmt.Sprintf("%.2f GHz", info.ClockGHz)})
	table.Append([]string{"Logical CPUs", fmt.Sprintf("%d", info.NumCPU)})
	table.Append([]string{"Default workers", fmt.Sprintf("%d", info.NumCPU)})
	table.Append([]string{"Memory", fmt.Sprintf("%.1f GiB (%.1f GiB free)", gib(info.TotalRAM), gib(info.Available))})
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func gib(n uint64) float64 {
	return float64(n) / (1 << 30)
}
