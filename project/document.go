package project

import (
	"encoding/xml"
	"io"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
)

var (
	ErrMalformedDocument = merry.Sentinel("malformed project document")
	ErrMalformedValue    = merry.Sentinel("malformed attribute value")
)

// Document is the parsed Camtasia project file. It is read once per run and
// only ever inspected by Extract.
type Document struct {
	XMLName  xml.Name
	Timeline *Timeline `xml:"Timeline"`
}

type Timeline struct {
	Mixer *Mixer `xml:"GenericMixer"`
}

type Mixer struct {
	Tracks *TrackList `xml:"Tracks"`
}

type TrackList struct {
	Tracks []Track `xml:"GenericTrack"`
}

// Track is one lane of the timeline. Parallel tracks usually describe the
// same cut points redundantly (video on one, audio on another).
type Track struct {
	Medias *MediaList `xml:"Medias"`
}

type MediaList struct {
	Entries []MediaEntry `xml:",any"`
}

// MediaEntry is any element inside <Medias>. Leaf clips (ScreenVMFile, AMFile)
// carry start/mediaStart/mediaDuration attributes directly; StitchedMedia
// carries its own attributes and nests further entries whose start values are
// relative to the container.
type MediaEntry struct {
	XMLName       xml.Name
	Start         string       `xml:"start,attr"`
	MediaStart    string       `xml:"mediaStart,attr"`
	MediaDuration string       `xml:"mediaDuration,attr"`
	Children      []MediaEntry `xml:",any"`
}

func (m MediaEntry) Kind() MediaKind {
	if k := Kinds.Parse(m.XMLName.Local); k != nil {
		return *k
	}
	return MediaKind{Value: m.XMLName.Local}
}

func (m MediaEntry) isGroup() bool {
	return m.Kind() == KindStitched
}

type MediaKind enum.Member[string]

var (
	KindScreen   = MediaKind{Value: "ScreenVMFile"}
	KindAudio    = MediaKind{Value: "AMFile"}
	KindStitched = MediaKind{Value: "StitchedMedia"}
	Kinds        = enum.New(KindScreen, KindAudio, KindStitched)
)

// Parse decodes a project document. The Timeline/GenericMixer/Tracks path must
// be present, otherwise the document cannot describe an edit list.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, merry.Wrap(ErrMalformedDocument, merry.WithCause(err))
	}

	if doc.Timeline == nil || doc.Timeline.Mixer == nil || doc.Timeline.Mixer.Tracks == nil {
		return nil, merry.Wrap(ErrMalformedDocument, merry.AppendMessage("missing Timeline/GenericMixer/Tracks"))
	}

	return &doc, nil
}
