// Package report renders binding reports for people and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"

	"github.com/dshills/evbind/internal/event/binding"
)

// Error is the class of report rendering errors.
var Error = errs.Class("report")

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a format name. "yml" is accepted for yaml.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	if !lo.Contains(Formats, f) {
		return "", Error.New("unsupported format %q (must be one of %s)", s, strings.Join(lo.Map(Formats, func(f Format, _ int) string { return string(f) }), ", "))
	}
	return f, nil
}

// Document is the serializable view of a binding report.
type Document struct {
	ID       string     `json:"id" yaml:"id" toml:"id"`
	State    string     `json:"state" yaml:"state" toml:"state"`
	OK       bool       `json:"ok" yaml:"ok" toml:"ok"`
	Bindings []Binding  `json:"bindings" yaml:"bindings" toml:"bindings"`
	Errors   []ErrorDoc `json:"errors" yaml:"errors" toml:"errors"`
}

// Binding is one installed binding.
type Binding struct {
	ID        string   `json:"id" yaml:"id" toml:"id"`
	Producer  string   `json:"producer" yaml:"producer" toml:"producer"`
	Signature string   `json:"signature" yaml:"signature" toml:"signature"`
	Consumers []string `json:"consumers" yaml:"consumers" toml:"consumers"`
}

// ErrorDoc is one binding error.
type ErrorDoc struct {
	Kind    string `json:"kind" yaml:"kind" toml:"kind"`
	Message string `json:"message" yaml:"message" toml:"message"`
}

// NewDocument converts r. Slices are never nil so every format renders
// empty lists the same way.
func NewDocument(r *binding.Report) Document {
	doc := Document{
		ID:       r.ID,
		State:    r.State.String(),
		OK:       r.OK(),
		Bindings: make([]Binding, 0, len(r.Bindings)),
		Errors:   make([]ErrorDoc, 0, len(r.Errors)),
	}
	for _, b := range r.Bindings {
		consumers := b.ConsumerNames()
		if consumers == nil {
			consumers = []string{}
		}
		doc.Bindings = append(doc.Bindings, Binding{
			ID:        b.ID.String(),
			Producer:  b.Producer.Qualified(),
			Signature: b.Producer.Signature(),
			Consumers: consumers,
		})
	}
	for _, err := range r.Errors {
		doc.Errors = append(doc.Errors, ErrorDoc{
			Kind:    string(binding.KindOf(err)),
			Message: err.Error(),
		})
	}
	return doc
}

// Write renders r to w in format f.
func Write(w io.Writer, r *binding.Report, f Format) error {
	doc := NewDocument(r)

	switch f {
	case FormatText, "":
		return Error.Wrap(writeText(w, doc))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return Error.Wrap(enc.Encode(doc))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return Error.Wrap(err)
		}
		return Error.Wrap(enc.Close())
	case FormatTOML:
		return Error.Wrap(toml.NewEncoder(w).Encode(doc))
	default:
		return Error.New("unsupported format %q", f)
	}
}

func writeText(w io.Writer, doc Document) error {
	if _, err := fmt.Fprintf(w, "pass %s: %s, %d bindings, %d errors\n",
		doc.ID, doc.State, len(doc.Bindings), len(doc.Errors)); err != nil {
		return err
	}

	if len(doc.Bindings) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPRODUCER\tSIGNATURE\tCONSUMERS")
		for _, b := range doc.Bindings {
			consumers := "-"
			if len(b.Consumers) > 0 {
				consumers = strings.Join(b.Consumers, ", ")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Producer, b.Signature, consumers)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, e := range doc.Errors {
		if _, err := fmt.Fprintf(w, "error [%s] %s\n", e.Kind, e.Message); err != nil {
			return err
		}
	}
	return nil
}
