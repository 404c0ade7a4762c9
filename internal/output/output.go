// Package output renders the assembled sprite into its external JSON
// layouts. Each schema is a pure mapping from the canonical Document; adding
// a layout means adding a schema variant here.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"spritegen/internal/sprite"
)

// Schema selects the external JSON layout.
type Schema string

const (
	// SchemaDefault is the canonical seconds-based layout.
	SchemaDefault Schema = "default"
	// SchemaHowler is the howler.js millisecond sprite table.
	SchemaHowler Schema = "howler"
	// SchemaCreateJS is the createjs audioSprite manifest.
	SchemaCreateJS Schema = "createjs"
)

// ParseSchema maps a configuration value onto a Schema.
func ParseSchema(value string) (Schema, error) {
	switch Schema(strings.ToLower(strings.TrimSpace(value))) {
	case SchemaDefault, "":
		return SchemaDefault, nil
	case SchemaHowler:
		return SchemaHowler, nil
	case SchemaCreateJS:
		return SchemaCreateJS, nil
	default:
		return "", fmt.Errorf("unknown output schema %q", value)
	}
}

// Document is the canonical model every schema renders from.
type Document struct {
	// Resources are the produced artifact paths in export order.
	Resources []string
	// Sprites is the assembled sprite map.
	Sprites *sprite.Map
	// Autoplay names the clip to start automatically, empty for none.
	Autoplay string
	// PathPrefix, when set, replaces each resource's directory in the
	// emitted URLs.
	PathPrefix string
}

// Render serializes doc in the requested schema as two-space-indented JSON
// with a trailing newline.
func Render(schema Schema, doc Document) ([]byte, error) {
	sprites := doc.Sprites
	if sprites == nil {
		sprites = sprite.NewMap()
	}

	var payload any
	switch schema {
	case SchemaDefault, "":
		payload = defaultDocument{
			Resources: doc.resourceURLs(),
			Spritemap: sprites,
			Autoplay:  doc.Autoplay,
		}
	case SchemaHowler:
		payload = howlerDocument{
			URLs:   doc.resourceURLs(),
			Sprite: howlerSprite{entries: sprites.Entries()},
		}
	case SchemaCreateJS:
		urls := doc.resourceURLs()
		src := ""
		if len(urls) > 0 {
			src = urls[0]
		}
		entries := sprites.Entries()
		audioSprite := make([]createjsEntry, 0, len(entries))
		for _, e := range entries {
			audioSprite = append(audioSprite, createjsEntry{
				ID:        e.Name,
				StartTime: e.Start * 1000,
				Duration:  e.Duration() * 1000,
			})
		}
		payload = createjsDocument{Src: src, Data: createjsData{AudioSprite: audioSprite}}
	default:
		return nil, fmt.Errorf("unknown output schema %q", schema)
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render sprite json: %w", err)
	}
	return append(encoded, '\n'), nil
}

func (d Document) resourceURLs() []string {
	urls := make([]string, 0, len(d.Resources))
	if d.PathPrefix == "" {
		return append(urls, d.Resources...)
	}
	prefix := strings.TrimRight(d.PathPrefix, "/")
	for _, resource := range d.Resources {
		urls = append(urls, prefix+"/"+filepath.Base(resource))
	}
	return urls
}

type defaultDocument struct {
	Resources []string    `json:"resources"`
	Spritemap *sprite.Map `json:"spritemap"`
	Autoplay  string      `json:"autoplay,omitempty"`
}

type howlerDocument struct {
	URLs   []string     `json:"urls"`
	Sprite howlerSprite `json:"sprite"`
}

// howlerSprite emits name -> [startMs, durationMs(, true)] keeping insertion
// order.
type howlerSprite struct {
	entries []sprite.Entry
}

func (h howlerSprite) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range h.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		cell := []any{e.Start * 1000, e.Duration() * 1000}
		if e.Loop {
			cell = append(cell, true)
		}
		value, err := json.Marshal(cell)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type createjsDocument struct {
	Src  string       `json:"src"`
	Data createjsData `json:"data"`
}

type createjsData struct {
	AudioSprite []createjsEntry `json:"audioSprite"`
}

type createjsEntry struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
}
