/*
render.go - Vacation document renderer

PURPOSE:
  Renders the vacation request document from the fixed template bundled
  with the binary. The template is a zip-based DOCX container; rendering
  substitutes {{TOKEN}} placeholders inside word/document.xml and
  re-serializes the container. The asset on disk is never touched:
  every render works on an in-memory copy.

ERROR TAXONOMY:
  ErrTemplateNotFound  - the embedded asset is missing (bad build)
  ErrTemplateCorrupt   - the container cannot be opened as a zip
  RenderError          - a template placeholder has no value in the field set

VERIFICATION:
  Output validity is checkable without a word processor: re-open the bytes
  as a zip and confirm word/document.xml and [Content_Types].xml exist.
*/
package docgen

import (
	"archive/zip"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/coacharte/intranet/vacation"
)

//go:embed assets/solicitud_vacaciones_v1.docx
var assets embed.FS

const (
	templateAsset = "assets/solicitud_vacaciones_v1.docx"
	documentEntry = "word/document.xml"

	// MIMEWord is the content type for rendered DOCX output.
	MIMEWord = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrTemplateNotFound is returned when the bundled template asset is
	// missing. Fatal; requires a redeploy, never a retry.
	ErrTemplateNotFound = errors.New("document template not found")

	// ErrTemplateCorrupt is returned when the template container cannot be
	// opened.
	ErrTemplateCorrupt = errors.New("document template is corrupt")
)

// RenderError reports a placeholder that could not be resolved.
type RenderError struct {
	Placeholder string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("unresolved template placeholder %q", e.Placeholder)
}

// RenderedDocument is an in-memory rendered binary. Its lifetime is bounded
// to a single delivery.
type RenderedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

var placeholderPattern = regexp.MustCompile(`\{\{([A-Z_]+)\}\}`)

// Template returns a fresh copy of the bundled template bytes.
func Template() ([]byte, error) {
	data, err := assets.ReadFile(templateAsset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}
	return data, nil
}

// Render substitutes the field set into templateBytes and returns the
// re-serialized container. Every placeholder present in the template must
// resolve to a value; a missing token fails with *RenderError.
func Render(templateBytes []byte, fields vacation.TemplateFields) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateCorrupt, err)
	}

	values := fields.Placeholders()

	var out bytes.Buffer
	writer := zip.NewWriter(&out)

	for _, entry := range reader.File {
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateCorrupt, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateCorrupt, err)
		}

		if entry.Name == documentEntry {
			content, err = substitute(content, values)
			if err != nil {
				return nil, err
			}
		}

		w, err := writer.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("rewrite %s: %w", entry.Name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("rewrite %s: %w", entry.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close container: %w", err)
	}
	return out.Bytes(), nil
}

// RenderRequest is the full pipeline over the bundled template: map fields,
// render, and name the output after the employee and start date.
func RenderRequest(profile vacation.Profile, balance vacation.Balance, req vacation.Request) (*RenderedDocument, error) {
	tmpl, err := Template()
	if err != nil {
		return nil, err
	}

	fields := vacation.MapTemplateFields(profile, balance, req)
	data, err := Render(tmpl, fields)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("Solicitud_Vacaciones_%s_%s", fields.FullName, req.StartDate)
	return &RenderedDocument{
		Filename:    SanitizeFilename(base) + ".docx",
		ContentType: MIMEWord,
		Data:        data,
	}, nil
}

func substitute(content []byte, values map[string]string) ([]byte, error) {
	var missing string
	replaced := placeholderPattern.ReplaceAllFunc(content, func(match []byte) []byte {
		name := string(match[2 : len(match)-2])
		value, ok := values[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return []byte(escapeXML(value))
	})
	if missing != "" {
		return nil, &RenderError{Placeholder: missing}
	}
	return replaced, nil
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
