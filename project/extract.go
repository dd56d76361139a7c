package project

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/orsinium-labs/enum"
)

// Segment is one flattened unit of the edit list: where it sits on the master
// timeline, where it starts in the source recording, and how long it runs.
// All values are in frames.
type Segment struct {
	TimelineStart int
	MediaStart    int
	Duration      int
	Kind          MediaKind
}

// GroupStrategy controls how StitchedMedia containers are flattened.
//
// The opaque strategy treats the container itself as the segment, which is
// what the editor appears to render. The transparent strategy descends into
// the container and offsets each child by the container's start. The schema
// semantics could not be verified against the editor, so both remain
// selectable; they must never be mixed within a run.
type GroupStrategy enum.Member[string]

var (
	StrategyOpaque      = GroupStrategy{Value: "opaque"}
	StrategyTransparent = GroupStrategy{Value: "transparent"}
	Strategies          = enum.New(StrategyOpaque, StrategyTransparent)
)

type segmentKey struct {
	mediaStart int
	duration   int
}

// Extract flattens every track of the document into a deduplicated sequence
// of segments, ordered by timeline position. Parallel tracks describing the
// same cut collapse to one segment, first encountered wins. A document with
// no clips yields an empty slice.
func Extract(doc *Document, strategy GroupStrategy) ([]Segment, error) {
	var candidates []Segment

	for _, track := range doc.Timeline.Mixer.Tracks.Tracks {
		if track.Medias == nil {
			continue
		}
		for _, entry := range track.Medias.Entries {
			segs, err := flatten(entry, 0, strategy)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, segs...)
		}
	}

	seen := mapset.NewThreadUnsafeSet[segmentKey]()
	segments := []Segment{}
	for _, seg := range candidates {
		if seg.Duration <= 0 {
			continue
		}
		if seen.Add(segmentKey{seg.MediaStart, seg.Duration}) {
			segments = append(segments, seg)
		}
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].TimelineStart < segments[j].TimelineStart
	})

	return segments, nil
}

func flatten(entry MediaEntry, offset int, strategy GroupStrategy) ([]Segment, error) {
	start, err := parseFraction(entry.Start)
	if err != nil {
		return nil, err
	}

	if entry.isGroup() && strategy == StrategyTransparent {
		var segs []Segment
		for _, child := range entry.Children {
			childSegs, err := flatten(child, offset+start, strategy)
			if err != nil {
				return nil, err
			}
			segs = append(segs, childSegs...)
		}
		return segs, nil
	}

	mediaStart, err := parseFraction(entry.MediaStart)
	if err != nil {
		return nil, err
	}
	duration, err := parseFraction(entry.MediaDuration)
	if err != nil {
		return nil, err
	}

	return []Segment{{
		TimelineStart: offset + start,
		MediaStart:    mediaStart,
		Duration:      duration,
		Kind:          entry.Kind(),
	}}, nil
}
