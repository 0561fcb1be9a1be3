package driver

import (
	"encoding/json"
	"fmt"

	"slang/internal/diag"
	"slang/internal/observ"
	"slang/internal/source"
)

// timingNote is the JSON carried by an OBS diagnostic's first note.
type timingNote struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
	observ.Report
}

// recordTimings attaches report to bag as an OBS note. The entry goes in
// even when the bag is already at its limit.
func recordTimings(bag *diag.Bag, kind, path string, report observ.Report) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(timingNote{Kind: kind, Path: path, Report: report})
	if err != nil {
		return
	}
	summary := fmt.Sprintf("timings (%s): total %.2f ms", kind, report.TotalMS)
	if path != "" {
		summary += ", " + path
	}
	entry := diag.New(diag.SevNote, diag.ObsTimings, source.Span{}, summary).
		WithNote(source.Span{}, string(data))

	if bag.Len() >= bag.Cap() {
		// Merge поднимает лимит вместо того чтобы считать запись отброшенной
		extra := diag.NewBag(1)
		extra.Add(entry)
		bag.Merge(extra)
		return
	}
	bag.Add(entry)
}

// TimingsOf decodes the reports recorded by --timings, in order.
func TimingsOf(bag *diag.Bag) []observ.Report {
	var out []observ.Report
	for _, d := range bag.Items() {
		if d.Code != diag.ObsTimings || len(d.Notes) == 0 {
			continue
		}
		var note timingNote
		if json.Unmarshal([]byte(d.Notes[0].Msg), &note) == nil {
			out = append(out, note.Report)
		}
	}
	return out
}
