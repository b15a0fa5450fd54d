package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
)

//go:embed templates/*
var templateFS embed.FS

// NewTemplate parses every embedded template. The files ship with the binary,
// so a parse failure is a programming error.
func NewTemplate() *Template {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	cache := make(map[string]*template.Template, len(files))
	for _, f := range files {
		cache[path.Base(f)] = template.Must(template.New("email").ParseFS(templateFS, f))
	}

	return &Template{cache: cache}
}

// ParseTemplate renders the subject, plainBody and htmlBody blocks of the named template with data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, ok := tp.cache[name]
	if !ok {
		return nil, nil, nil, fmt.Errorf("could not parse template: unknown template %q", name)
	}

	var out [3]*bytes.Buffer
	for i, block := range []string{"subject", "plainBody", "htmlBody"} {
		out[i] = new(bytes.Buffer)
		if err := t.ExecuteTemplate(out[i], block, data); err != nil {
			return nil, nil, nil, err
		}
	}

	return out[0], out[1], out[2], nil
}
