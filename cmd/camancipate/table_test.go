package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"camancipate/project"
)

func TestMMSS(t *testing.T) {
	assert.Equal(t, "00:00", mmss(0, 30))
	assert.Equal(t, "00:30", mmss(900, 30))
	assert.Equal(t, "01:15", mmss(2250, 30))
}

func TestPrintSegments(t *testing.T) {
	var sb strings.Builder
	printSegments(&sb, []project.Segment{
		{TimelineStart: 0, MediaStart: 0, Duration: 900, Kind: project.KindScreen},
		{TimelineStart: 900, MediaStart: 900, Duration: 450, Kind: project.KindStitched},
	}, 30)

	out := sb.String()
	assert.Contains(t, out, "ScreenVMFile")
	assert.Contains(t, out, "StitchedMedia")

	// 1350 frames at 30fps
	assert.Contains(t, out, "Total duration: 00:45")
}
