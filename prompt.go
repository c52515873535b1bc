package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter asks the user for values that were not given on the command line.
type Prompter interface {
	Input(p InputPrompt) (string, error)
	Select(title string, choices []string) (string, error)
	Confirm(title string) (bool, error)
}

type InputPrompt struct {
	Title    string
	Default  string
	Required bool
	Validate func(string) error
}

// check applies Required and Validate to a trimmed value.
func (p InputPrompt) check(value string) error {
	value = strings.TrimSpace(value)
	if p.Required && value == "" {
		return errors.New("a value is required")
	}
	if p.Validate != nil {
		return p.Validate(value)
	}
	return nil
}

var prompter Prompter = huhPrompter{}

type huhPrompter struct{}

func (huhPrompter) Input(p InputPrompt) (string, error) {
	value := p.Default

	err := huh.NewInput().
		Title(p.Title).
		Value(&value).
		Validate(p.check).
		Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(value), nil
}

func (huhPrompter) Select(title string, choices []string) (string, error) {
	var value string

	err := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(choices...)...).
		Value(&value).
		Run()
	if err != nil {
		return "", err
	}

	return value, nil
}

func (huhPrompter) Confirm(title string) (bool, error) {
	var value bool

	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value).
		Run()
	if err != nil {
		return false, err
	}

	return value, nil
}
