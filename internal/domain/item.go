package domain

import (
	"encoding/json"
	"fmt"
)

// Amount is a price in whole currency units.
type Amount int64

type Category string

const (
	CategoryCoffee   Category = "coffee"
	CategoryTea      Category = "tea"
	CategorySmoothie Category = "smoothie"
	CategoryDessert  Category = "dessert"
)

// Categories lists the menu sections in display order.
var Categories = []Category{CategoryCoffee, CategoryTea, CategorySmoothie, CategoryDessert}

// OptionGroup is one selectable option on a menu item, e.g. size: S, M, L.
type OptionGroup struct {
	Key     string
	Choices []string
}

type Item struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       Amount       `json:"price"`
	Image       string       `json:"image"`
	Category    Category     `json:"category"`
	Options     OptionGroups `json:"options,omitempty"`
}

// OptionGroups keeps the order the groups appear in the menu document.
type OptionGroups []OptionGroup

func (g OptionGroups) MarshalJSON() ([]byte, error) {
	pairs := make([]orderedPair, 0, len(g))
	for _, group := range g {
		pairs = append(pairs, orderedPair{key: group.Key, value: group.Choices})
	}
	return encodeObject(pairs)
}

// UnmarshalJSON ignores groups whose value is not a list of strings.
func (g *OptionGroups) UnmarshalJSON(data []byte) error {
	groups := OptionGroups{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var choices []string
		if err := json.Unmarshal(raw, &choices); err != nil || choices == nil {
			return nil
		}
		groups = append(groups, OptionGroup{Key: key, Choices: choices})
		return nil
	})
	if err != nil {
		return fmt.Errorf("decode option groups: %w", err)
	}
	*g = groups
	return nil
}

// Menu is the catalog document: category -> ordered items.
type Menu map[Category][]Item

// EmptyMenu returns a menu with every known category present and empty.
func EmptyMenu() Menu {
	m := make(Menu, len(Categories))
	for _, c := range Categories {
		m[c] = []Item{}
	}
	return m
}
