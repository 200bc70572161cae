package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/pendulums/internal/export"
	"github.com/san-kum/pendulums/internal/storage"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tPENDULUMS\tDAMPING\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%d\t%t\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Pendulums,
			run.Damping,
			run.Seed,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trails, err := st.LoadTrails(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = runID + "." + format
	}

	switch format {
	case "svg":
		svg := export.TrailsToSVG(trails, size, size)
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
	case "png":
		title := fmt.Sprintf("%d pendulums, %.1fs", meta.Pendulums, meta.Duration)
		// png output is rendered at 96 dpi
		if err := export.SavePlot(path, trails, title, vg.Length(size)*vg.Inch/96); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (available: svg, png)", format)
	}

	fmt.Printf("exported %d trails to %s\n", len(trails), path)
	return nil
}
