package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/pgadula/raytracing/pkg/scene"
	"github.com/urfave/cli"
)

// List built-in scenes and the scene files found in the scenes directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.List(ctx.GlobalString("scenes"))
	if err != nil {
		// Broken files are reported but do not hide the valid ones
		logger.Warningf("some scene files could not be loaded: %v", err)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Type", "Objects", "Description"})
	for _, info := range scenes {
		table.Append([]string{
			info.ID,
			info.DisplayName,
			info.Type,
			fmt.Sprintf("%d", info.Objects),
			info.Description,
		})
	}
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
