// Package zwo reads and writes structured workout XML files.
//
// The on-disk format is byte-exact: downstream importers are known to choke
// on double-quoted XML declarations and on block indents other than four
// spaces, so serialization is hand-rolled rather than going through
// encoding/xml.
package zwo

import (
	"fmt"
	"strconv"
	"strings"
)

// Block is one element inside the <workout> body.
type Block interface {
	// DurationSeconds is the total ride time the block occupies.
	DurationSeconds() int
	// WeightedPower is power x duration, used for workout averages.
	// Freeride counts as zero.
	WeightedPower() float64

	appendXML(b *strings.Builder)
}

// TextEvent is an on-screen cue attached to an IntervalsT or FreeRide block.
type TextEvent struct {
	OffsetSeconds int
	Message       string
}

// Warmup ramps from PowerLow to PowerHigh.
type Warmup struct {
	Duration  int
	PowerLow  float64
	PowerHigh float64
}

// SteadyState holds one power for the whole duration.
type SteadyState struct {
	Duration int
	Power    float64
	Cadence  int
}

// Intervals is a repeated on/off effort.
type Intervals struct {
	Repeat      int
	OnDuration  int
	OnPower     float64
	OffDuration int
	OffPower    float64
	TextEvents  []TextEvent
}

// FreeRide is athlete-driven power for the duration.
type FreeRide struct {
	Duration   int
	TextEvents []TextEvent
}

// Cooldown ramps from PowerLow down to PowerHigh.
type Cooldown struct {
	Duration  int
	PowerLow  float64
	PowerHigh float64
}

func (w Warmup) DurationSeconds() int { return w.Duration }
func (w Warmup) WeightedPower() float64 {
	return float64(w.Duration) * (w.PowerLow + w.PowerHigh) / 2
}

func (s SteadyState) DurationSeconds() int   { return s.Duration }
func (s SteadyState) WeightedPower() float64 { return float64(s.Duration) * s.Power }

func (i Intervals) DurationSeconds() int {
	return i.Repeat * (i.OnDuration + i.OffDuration)
}

func (i Intervals) WeightedPower() float64 {
	return float64(i.Repeat) * (float64(i.OnDuration)*i.OnPower + float64(i.OffDuration)*i.OffPower)
}

func (f FreeRide) DurationSeconds() int   { return f.Duration }
func (f FreeRide) WeightedPower() float64 { return 0 }

func (c Cooldown) DurationSeconds() int { return c.Duration }
func (c Cooldown) WeightedPower() float64 {
	return float64(c.Duration) * (c.PowerLow + c.PowerHigh) / 2
}

// Document is a complete workout file.
type Document struct {
	Author      string
	Name        string
	Description string
	Blocks      []Block
}

// TotalSeconds sums the block durations.
func (d *Document) TotalSeconds() int {
	total := 0
	for _, block := range d.Blocks {
		total += block.DurationSeconds()
	}
	return total
}

// AveragePower is the duration-weighted mean power as a fraction of FTP.
// FreeRide time is excluded from the denominator.
func (d *Document) AveragePower() float64 {
	var weighted float64
	denominator := 0
	for _, block := range d.Blocks {
		if _, ok := block.(FreeRide); ok {
			continue
		}
		weighted += block.WeightedPower()
		denominator += block.DurationSeconds()
	}
	if denominator == 0 {
		return 0
	}
	return weighted / float64(denominator)
}

// Marshal renders the document in the canonical byte-exact format.
func (d *Document) Marshal() []byte {
	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='UTF-8'?>\n")
	b.WriteString("<workout_file>\n")
	fmt.Fprintf(&b, "  <author>%s</author>\n", escape(d.Author))
	fmt.Fprintf(&b, "  <name>%s</name>\n", escape(d.Name))
	fmt.Fprintf(&b, "  <description>%s</description>\n", escape(d.Description))
	b.WriteString("  <sportType>bike</sportType>\n")
	b.WriteString("  <workout>\n")
	for _, block := range d.Blocks {
		block.appendXML(&b)
	}
	b.WriteString("  </workout>\n")
	b.WriteString("</workout_file>\n")
	return []byte(b.String())
}

// blockIndent is four spaces: six- and eight-space indents break known
// downstream importers.
const blockIndent = "    "

func (w Warmup) appendXML(b *strings.Builder) {
	fmt.Fprintf(b, "%s<Warmup Duration=\"%d\" PowerLow=\"%s\" PowerHigh=\"%s\"/>\n",
		blockIndent, w.Duration, power(w.PowerLow), power(w.PowerHigh))
}

func (s SteadyState) appendXML(b *strings.Builder) {
	if s.Cadence > 0 {
		fmt.Fprintf(b, "%s<SteadyState Duration=\"%d\" Power=\"%s\" Cadence=\"%d\"/>\n",
			blockIndent, s.Duration, power(s.Power), s.Cadence)
		return
	}
	fmt.Fprintf(b, "%s<SteadyState Duration=\"%d\" Power=\"%s\"/>\n",
		blockIndent, s.Duration, power(s.Power))
}

func (i Intervals) appendXML(b *strings.Builder) {
	open := fmt.Sprintf("%s<IntervalsT Repeat=\"%d\" OnDuration=\"%d\" OnPower=\"%s\" OffDuration=\"%d\" OffPower=\"%s\"",
		blockIndent, i.Repeat, i.OnDuration, power(i.OnPower), i.OffDuration, power(i.OffPower))
	if len(i.TextEvents) == 0 {
		b.WriteString(open + "/>\n")
		return
	}
	b.WriteString(open + ">\n")
	appendTextEvents(b, i.TextEvents)
	fmt.Fprintf(b, "%s</IntervalsT>\n", blockIndent)
}

func (f FreeRide) appendXML(b *strings.Builder) {
	open := fmt.Sprintf("%s<FreeRide Duration=\"%d\"", blockIndent, f.Duration)
	if len(f.TextEvents) == 0 {
		b.WriteString(open + "/>\n")
		return
	}
	b.WriteString(open + ">\n")
	appendTextEvents(b, f.TextEvents)
	fmt.Fprintf(b, "%s</FreeRide>\n", blockIndent)
}

func (c Cooldown) appendXML(b *strings.Builder) {
	fmt.Fprintf(b, "%s<Cooldown Duration=\"%d\" PowerLow=\"%s\" PowerHigh=\"%s\"/>\n",
		blockIndent, c.Duration, power(c.PowerLow), power(c.PowerHigh))
}

func appendTextEvents(b *strings.Builder, events []TextEvent) {
	for _, event := range events {
		fmt.Fprintf(b, "%s  <textevent timeoffset=\"%d\" message=\"%s\"/>\n",
			blockIndent, event.OffsetSeconds, escape(event.Message))
	}
}

// power renders a fraction of FTP with the shortest exact decimal.
func power(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

//nolint:gochecknoglobals // static replacer, read-only.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}
