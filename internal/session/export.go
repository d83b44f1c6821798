package session

import (
	"context"
	"fmt"

	"github.com/abhisek/studybuddy/internal/export"
	"github.com/abhisek/studybuddy/internal/locale"
)

// ExportNotes writes every finished assistant reply of the conversation to
// a notes document and returns its path.
func (o *Orchestrator) ExportNotes(ctx context.Context) (string, error) {
	if o.exporter == nil {
		return "", fmt.Errorf("%w: no exporter configured", ErrNothingToExport)
	}

	o.mu.Lock()
	if o.tracker == nil {
		o.mu.Unlock()
		return "", ErrNoPlan
	}
	plan := o.tracker.Plan()
	prog := export.Progress{
		Completed: o.tracker.CompletedCount(),
		Total:     plan.Len(),
		Badges:    o.badges.Earned().Len(),
	}
	o.mu.Unlock()

	entries := o.transcript.ExportCandidates()
	if len(entries) == 0 {
		return "", ErrNothingToExport
	}

	notes := export.Notes{
		Title:      o.cat.T(locale.ExportTitle, plan.MainTopic),
		Topic:      plan.MainTopic,
		FilePrefix: o.cat.T(locale.NotesPrefix),
		Lang:       o.cat.Lang(),
		Progress:   prog,
	}
	for _, e := range entries {
		sec := export.Section{Heading: e.SubTopic, Markdown: e.Content}
		for _, img := range e.Images {
			sec.Images = append(sec.Images, export.Image{MIMEType: img.MIMEType, Data: img.Data})
		}
		notes.Sections = append(notes.Sections, sec)
	}

	path, err := o.exporter.Export(ctx, notes)
	if err != nil {
		o.log.Warn("export failed", "error", err)
		return "", err
	}
	return path, nil
}
