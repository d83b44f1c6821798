package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/sync/errgroup"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type renderedSection struct {
	Heading string
	Images  []template.URL
	Body    template.HTML
}

type page struct {
	Lang     string
	Title    string
	Card     template.URL
	Sections []renderedSection
}

var pageTemplate = template.Must(template.New("notes").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; line-height: 1.6; max-width: 820px; margin: 2rem auto; padding: 0 1rem; color: #1f2330; }
h1 { color: #4f46e5; border-bottom: 2px solid #e5e7eb; padding-bottom: .5rem; }
h2 { color: #374151; margin-top: 2rem; }
section { margin-bottom: 2rem; }
img { max-width: 100%; border-radius: 8px; margin: 1rem 0; }
img.card { max-width: 480px; }
code { background: #f3f4f6; padding: .1rem .3rem; border-radius: 4px; }
table { border-collapse: collapse; } td, th { border: 1px solid #e5e7eb; padding: .3rem .6rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Card}}<img class="card" src="{{.}}" alt="">{{end}}
{{range .Sections}}<section>
{{with .Heading}}<h2>{{.}}</h2>{{end}}
{{range .Images}}<img src="{{.}}" alt="">
{{end}}{{.Body}}
</section>
{{end}}</body>
</html>
`))

// Render builds the HTML document. Sections are converted concurrently and
// keep their order.
func Render(ctx context.Context, notes Notes) ([]byte, error) {
	sections := make([]renderedSection, len(notes.Sections))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, s := range notes.Sections {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var body bytes.Buffer
			if err := markdown.Convert([]byte(s.Markdown), &body); err != nil {
				return fmt.Errorf("section %d: %w", i, err)
			}
			rs := renderedSection{Heading: s.Heading, Body: template.HTML(body.String())}
			for _, img := range s.Images {
				rs.Images = append(rs.Images, dataURI(img.MIMEType, img.Data))
			}
			sections[i] = rs
			return nil
		})
	}

	var card []byte
	g.Go(func() error {
		var err error
		card, err = ProgressCard(notes.Progress)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render notes: %w", err)
	}

	lang := notes.Lang
	if lang == "" {
		lang = "en"
	}
	var out bytes.Buffer
	err := pageTemplate.Execute(&out, page{
		Lang:     lang,
		Title:    notes.Title,
		Card:     dataURI("image/png", card),
		Sections: sections,
	})
	if err != nil {
		return nil, fmt.Errorf("render notes: %w", err)
	}
	return out.Bytes(), nil
}

func dataURI(mimeType string, data []byte) template.URL {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return template.URL("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data))
}
