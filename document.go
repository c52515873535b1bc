package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"

	"gopkg.in/yaml.v3"
)

// document is a JSON object whose keys keep the order they were read or
// added in. Values stay raw so entries are written back byte for byte.
type document struct {
	keys   []string
	values map[string]json.RawMessage
}

func newDocument() *document {
	return &document{values: make(map[string]json.RawMessage)}
}

func (d *document) Keys() []string {
	return d.keys
}

func (d *document) Get(key string) (json.RawMessage, bool) {
	v, found := d.values[key]
	return v, found
}

// Set replaces the value of key, appending key if it is new.
func (d *document) Set(key string, value json.RawMessage) {
	if _, found := d.values[key]; !found {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *document) Delete(key string) {
	if _, found := d.values[key]; !found {
		return
	}
	delete(d.values, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
}

func (d *document) UnmarshalJSON(content []byte) error {
	dec := json.NewDecoder(bytes.NewReader(content))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("config is not an object")
	}

	doc := newDocument()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		doc.Set(key, value)
	}

	*d = *doc
	return nil
}

func (d *document) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer

	b.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(d.values[k])
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}

// yamlToJSON converts a YAML node to JSON, keeping mapping key order.
func yamlToJSON(n *yaml.Node) ([]byte, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return []byte("null"), nil
		}
		return yamlToJSON(n.Content[0])

	case yaml.AliasNode:
		return yamlToJSON(n.Alias)

	case yaml.MappingNode:
		var b bytes.Buffer
		b.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				b.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return nil, err
			}
			value, err := yamlToJSON(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			b.Write(key)
			b.WriteByte(':')
			b.Write(value)
		}
		b.WriteByte('}')
		return b.Bytes(), nil

	case yaml.SequenceNode:
		var b bytes.Buffer
		b.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				b.WriteByte(',')
			}
			value, err := yamlToJSON(c)
			if err != nil {
				return nil, err
			}
			b.Write(value)
		}
		b.WriteByte(']')
		return b.Bytes(), nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// blockStyle drops the flow and quoting styles a node got from JSON input,
// so it encodes as ordinary block YAML.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
