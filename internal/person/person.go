// Package person provides the Person type: a named, colored owner of a
// private calendar.
package person

import (
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8

	// MaxPersons is the registry capacity.
	MaxPersons = 10

	// DefaultColor is applied when a person is added without a color.
	DefaultColor = "#888"
)

var (
	// ErrEmptyName indicates a person name that is empty after trimming.
	ErrEmptyName = errors.New("person name must not be empty")

	// ErrRegistryFull indicates that the registry already holds MaxPersons.
	ErrRegistryFull = fmt.Errorf("registry already holds the maximum of %d persons", MaxPersons)
)

// Person is a named owner of events. Color is a display color token such as "#3B82F6".
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewID generates a new 8-character lowercase alphanumeric person ID.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// Seed returns the person a fresh store starts with.
func Seed() Person {
	return Person{ID: "Name", Name: "Name", Color: "#3B82F6"}
}

// New validates name and builds a person with a fresh ID. An empty color
// falls back to DefaultColor.
func New(name, color string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, ErrEmptyName
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultColor
	}
	id, err := NewID()
	if err != nil {
		return Person{}, fmt.Errorf("generating person ID: %w", err)
	}
	return Person{ID: id, Name: name, Color: color}, nil
}

// Apply updates name and color in place, skipping empty values.
func (p *Person) Apply(name, color string) {
	if name = strings.TrimSpace(name); name != "" {
		p.Name = name
	}
	if color = strings.TrimSpace(color); color != "" {
		p.Color = color
	}
}
