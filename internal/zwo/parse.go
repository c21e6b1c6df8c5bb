package zwo

import (
	"encoding/xml"
	"log/slog"

	"github.com/raceprep/raceprep/internal/errors"
)

// The read side goes through encoding/xml; only writing needs to be
// byte-exact.

type xmlTextEvent struct {
	TimeOffset int    `xml:"timeoffset,attr"`
	Message    string `xml:"message,attr"`
}

type xmlBlock struct {
	XMLName     xml.Name
	Duration    int            `xml:"Duration,attr"`
	Power       float64        `xml:"Power,attr"`
	PowerLow    float64        `xml:"PowerLow,attr"`
	PowerHigh   float64        `xml:"PowerHigh,attr"`
	Cadence     int            `xml:"Cadence,attr"`
	Repeat      int            `xml:"Repeat,attr"`
	OnDuration  int            `xml:"OnDuration,attr"`
	OnPower     float64        `xml:"OnPower,attr"`
	OffDuration int            `xml:"OffDuration,attr"`
	OffPower    float64        `xml:"OffPower,attr"`
	TextEvents  []xmlTextEvent `xml:"textevent"`
}

type xmlWorkout struct {
	Blocks []xmlBlock `xml:",any"`
}

type xmlWorkoutFile struct {
	XMLName     xml.Name   `xml:"workout_file"`
	Author      string     `xml:"author"`
	Name        string     `xml:"name"`
	Description string     `xml:"description"`
	SportType   string     `xml:"sportType"`
	Workout     xmlWorkout `xml:"workout"`
}

var ErrUnknownBlock = errors.NewSentinel("unknown workout block")

// Parse decodes a workout document previously written by Marshal.
func Parse(data []byte) (*Document, error) {
	var file xmlWorkoutFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "unmarshal workout file")
	}
	doc := &Document{
		Author:      file.Author,
		Name:        file.Name,
		Description: file.Description,
	}
	for _, raw := range file.Workout.Blocks {
		block, err := blockFromXML(raw)
		if err != nil {
			return nil, err
		}
		doc.Blocks = append(doc.Blocks, block)
	}
	return doc, nil
}

func blockFromXML(raw xmlBlock) (Block, error) {
	switch raw.XMLName.Local {
	case "Warmup":
		return Warmup{Duration: raw.Duration, PowerLow: raw.PowerLow, PowerHigh: raw.PowerHigh}, nil
	case "SteadyState":
		return SteadyState{Duration: raw.Duration, Power: raw.Power, Cadence: raw.Cadence}, nil
	case "IntervalsT":
		return Intervals{
			Repeat:      raw.Repeat,
			OnDuration:  raw.OnDuration,
			OnPower:     raw.OnPower,
			OffDuration: raw.OffDuration,
			OffPower:    raw.OffPower,
			TextEvents:  textEventsFromXML(raw.TextEvents),
		}, nil
	case "FreeRide":
		return FreeRide{Duration: raw.Duration, TextEvents: textEventsFromXML(raw.TextEvents)}, nil
	case "Cooldown":
		return Cooldown{Duration: raw.Duration, PowerLow: raw.PowerLow, PowerHigh: raw.PowerHigh}, nil
	default:
		return nil, errors.Wrap(ErrUnknownBlock, "parse workout block",
			slog.String("element", raw.XMLName.Local))
	}
}

func textEventsFromXML(events []xmlTextEvent) []TextEvent {
	if len(events) == 0 {
		return nil
	}
	out := make([]TextEvent, 0, len(events))
	for _, e := range events {
		out = append(out, TextEvent{OffsetSeconds: e.TimeOffset, Message: e.Message})
	}
	return out
}
