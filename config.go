package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the typed view of the config document.
type Config struct {
	Commands []CustomCommand `json:"commands,omitempty"`
}

// Store reads and writes the whole config document at Path.
//
// Every mutation loads the document, changes one top-level key and rewrites
// the file. Keys the typed Config does not know about survive a save.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the config document, or an empty one if the file is missing,
// unreadable or not a JSON (YAML) object.
func (s Store) Load() *document {
	if _, err := checkAndCreateDir(filepath.Dir(s.Path)); err != nil {
		return newDocument()
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return newDocument()
	}
	defer file.Close()

	doc, err := decodeDocument(file, s.isYAML())
	if err != nil {
		return newDocument()
	}
	return doc
}

// Config decodes the document into a Config.
// A document whose commands do not fit the model yields an empty Config.
func (s Store) Config() Config {
	var c Config
	if err := convert(s.Load(), &c); err != nil {
		return Config{}
	}
	return c
}

// Save sets key to value.
//
// If value is a list and identifier is not empty, each item is upserted into
// the list already stored at key: an item whose identifier matches an
// existing element replaces it in place, any other item is appended.
// Otherwise key is replaced wholesale.
func (s Store) Save(key string, value any, identifier string) (string, error) {
	doc := s.Load()

	v, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("Failed to save config: %s: %w", key, err)
	}

	var items []json.RawMessage
	if identifier != "" && json.Unmarshal(v, &items) == nil {
		var existing []json.RawMessage
		if stored, found := doc.Get(key); found {
			_ = json.Unmarshal(stored, &existing)
		}

		for _, item := range items {
			id, found := idOf(item, identifier)
			if !found {
				return "", fmt.Errorf("Value must have an %s property: %s", identifier, key)
			}

			if i := indexOf(existing, identifier, id); i >= 0 {
				existing[i] = item
			} else {
				existing = append(existing, item)
			}
		}

		if v, err = json.Marshal(existing); err != nil {
			return "", fmt.Errorf("Failed to save config: %s: %w", key, err)
		}
	}
	doc.Set(key, v)

	if err := s.write(doc); err != nil {
		return "", fmt.Errorf("Failed to save config: %s: %w", key, err)
	}
	return fmt.Sprintf("New config saved to %s", key), nil
}

// SaveSubCommand stores sub under the command named commandName, replacing a
// subcommand of the same name.
func (s Store) SaveSubCommand(commandName string, sub CustomSubCommand) (string, error) {
	config := s.Config()
	if len(config.Commands) == 0 {
		return "", errors.New("No Commands found")
	}

	i := config.CommandIndex(commandName)
	if i < 0 {
		return "", fmt.Errorf("Command %s not found", commandName)
	}
	config.Commands[i].SetSubCommand(sub)

	return s.Save("commands", config.Commands, "name")
}

// DeleteKey removes key from the document.
func (s Store) DeleteKey(key string) (string, error) {
	doc := s.Load()
	doc.Delete(key)

	if err := s.write(doc); err != nil {
		return "", fmt.Errorf("Failed to delete config: %s: %w", key, err)
	}
	return fmt.Sprintf("Config deleted: %s", key), nil
}

// DeleteAt removes the element at index from the list stored at key.
// The file is left untouched when validation fails.
func (s Store) DeleteAt(key string, index int, identifier string) (string, error) {
	doc := s.Load()

	var items []json.RawMessage
	stored, found := doc.Get(key)
	if !found || json.Unmarshal(stored, &items) != nil || items == nil {
		return "", fmt.Errorf("Config is not an array: %s", key)
	}
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("Index %d out of bounds", index)
	}

	var label string
	if identifier != "" {
		id, found := idOf(items[index], identifier)
		if !found {
			return "", fmt.Errorf("Command identifier %s does not exist", identifier)
		}
		label = fmt.Sprint(id)
	}

	v, err := json.Marshal(slices.Delete(items, index, index+1))
	if err != nil {
		return "", fmt.Errorf("Failed to delete config: %s: %w", key, err)
	}
	doc.Set(key, v)

	if err := s.write(doc); err != nil {
		return "", fmt.Errorf("Failed to delete config: %s: %w", key, err)
	}

	if label != "" {
		return fmt.Sprintf("Command %s deleted from %s", label, key), nil
	}
	return fmt.Sprintf("Entry %d deleted from %s", index, key), nil
}

func (s Store) write(doc *document) error {
	if _, err := checkAndCreateDir(filepath.Dir(s.Path)); err != nil {
		return err
	}

	file, err := os.Create(s.Path)
	if err != nil {
		return err
	}

	err = encodeDocument(file, doc, s.isYAML())
	if err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func (s Store) isYAML() bool {
	return in(filepath.Ext(s.Path), ".yaml", ".yml")
}

func decodeDocument(in io.Reader, asYAML bool) (*document, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	if asYAML {
		var node yaml.Node
		if err := yaml.Unmarshal(content, &node); err != nil {
			return nil, err
		}
		if content, err = yamlToJSON(&node); err != nil {
			return nil, err
		}
	}

	doc := newDocument()
	if err := json.Unmarshal(content, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func encodeDocument(out io.Writer, doc *document, asYAML bool) error {
	if asYAML {
		content, err := json.Marshal(doc)
		if err != nil {
			return err
		}

		var node yaml.Node
		if err := yaml.Unmarshal(content, &node); err != nil {
			return err
		}
		blockStyle(&node)

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	content = append(content, '\n')

	_, err = out.Write(content)
	return err
}

func convert(in, out any) error {
	content, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, out)
}

// idOf returns the identifier property of a list item.
func idOf(item json.RawMessage, identifier string) (any, bool) {
	var m map[string]any
	if err := json.Unmarshal(item, &m); err != nil {
		return nil, false
	}
	id, found := m[identifier]
	return id, found
}

func indexOf(items []json.RawMessage, identifier string, id any) int {
	return slices.IndexFunc(items, func(item json.RawMessage) bool {
		v, found := idOf(item, identifier)
		return found && reflect.DeepEqual(v, id)
	})
}

// checkAndCreateDir reports whether dir already existed, creating it if not.
func checkAndCreateDir(dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return true, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", dir, err)
	}
	return false, nil
}
