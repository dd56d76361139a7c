package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"camancipate/project"
)

// mmss renders a frame count as minutes:seconds at the given frame rate.
func mmss(frames, frameRate int) string {
	seconds := frames / frameRate
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func printSegments(w io.Writer, segments []project.Segment, frameRate int) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "timelineStart\tIn point\tOut point\tduration\ttype")

	total := 0
	for _, s := range segments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			mmss(s.TimelineStart, frameRate),
			mmss(s.MediaStart, frameRate),
			mmss(s.MediaStart+s.Duration, frameRate),
			mmss(s.Duration, frameRate),
			s.Kind.Value,
		)
		total += s.Duration
	}
	tw.Flush()

	fmt.Fprintf(w, "Total duration: %s\n", mmss(total, frameRate))
}
