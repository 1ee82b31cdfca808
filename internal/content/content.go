// Package content holds the compiled-in QTcF decision tree and its YAML loader.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/dsl"
	"github.com/cardio-onc/qtwizard/pkg/registry"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed qtcf.yaml
var qtcfYAML []byte

// Document is a decoded content file.
type Document struct {
	Title     string
	Resources []domain.RichOption
	Registry  *registry.Registry
}

type documentDTO struct {
	Title     string           `mapstructure:"title"`
	Resources []linkDTO        `mapstructure:"resources"`
	Steps     []map[string]any `mapstructure:"steps"`
}

type stepDTO struct {
	Title  string `mapstructure:"title"`
	Points []any  `mapstructure:"points"`
	Next   any    `mapstructure:"next"`
}

type choiceDTO struct {
	Text    string `mapstructure:"text"`
	Options []any  `mapstructure:"options"`
}

type linkDTO struct {
	Link string `mapstructure:"link"`
	Href string `mapstructure:"href"`
}

var (
	qtcfOnce sync.Once
	qtcfDoc  *Document
	qtcfErr  error
)

// QTcF returns the compiled-in QTcF assessment tree.
// The document is decoded once and shared; it is immutable.
func QTcF() (*Document, error) {
	qtcfOnce.Do(func() {
		qtcfDoc, qtcfErr = Load(bytes.NewReader(qtcfYAML))
	})
	return qtcfDoc, qtcfErr
}

// MustQTcF is QTcF for program start-up; it panics on broken embedded content.
func MustQTcF() *Document {
	doc, err := QTcF()
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return doc
}

// Load decodes a YAML content document.
func Load(r io.Reader) (*Document, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	var doc documentDTO
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	b := dsl.New()
	for i, rawStep := range doc.Steps {
		if err := decodeStep(b, rawStep); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	reg, err := b.Build()
	if err != nil {
		return nil, err
	}

	out := &Document{Title: doc.Title, Registry: reg}
	for _, l := range doc.Resources {
		out.Resources = append(out.Resources, domain.RichOption{Kind: domain.RichLink, Text: l.Link, Href: l.Href})
	}
	return out, nil
}

func decodeStep(b *dsl.Builder, raw map[string]any) error {
	var dto stepDTO
	if err := mapstructure.Decode(raw, &dto); err != nil {
		return err
	}

	sb := b.Step(dto.Title)

	for _, p := range dto.Points {
		switch v := p.(type) {
		case string:
			sb.Text(v)
		case map[string]any:
			var c choiceDTO
			if err := mapstructure.Decode(v, &c); err != nil {
				return fmt.Errorf("invalid choice: %w", err)
			}
			opts, err := decodeOptions(c.Options)
			if err != nil {
				return err
			}
			sb.Choice(c.Text, opts...)
		default:
			return fmt.Errorf("unsupported point of type %T", p)
		}
	}

	// An explicit "next: null" is a terminal marker, just like "next: none".
	if _, present := raw["next"]; !present {
		return nil
	}
	switch v := dto.Next.(type) {
	case nil:
		sb.Terminal()
	case int:
		sb.Next(v)
	case string:
		d, err := domain.ParseDestination(v)
		if err != nil {
			return err
		}
		if d.IsNone() {
			sb.Terminal()
		} else if idx, ok := d.Index(); ok {
			sb.Next(idx)
		}
	default:
		return fmt.Errorf("unsupported next of type %T", dto.Next)
	}
	return nil
}

func decodeOptions(raw []any) ([]domain.Option, error) {
	opts := make([]domain.Option, 0, len(raw))
	for _, o := range raw {
		switch v := o.(type) {
		case string:
			opts = append(opts, dsl.Option(v))
		case map[string]any:
			var l linkDTO
			if err := mapstructure.Decode(v, &l); err != nil {
				return nil, fmt.Errorf("invalid link option: %w", err)
			}
			opts = append(opts, dsl.Link(l.Link, l.Href))
		default:
			return nil, fmt.Errorf("unsupported option of type %T", o)
		}
	}
	return opts, nil
}
