// Package guide serves the offline nutrition and care articles and the
// pregnancy-safe food list.
package guide

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed library.yaml
var defaultLibraryYAML []byte

type Article struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Summary   string `json:"summary" yaml:"summary"`
	Content   string `json:"content" yaml:"content"`
	Category  string `json:"category" yaml:"category"`
	Trimester string `json:"trimester,omitempty" yaml:"trimester"`
	ReadTime  int    `json:"read_time" yaml:"read_time"`
}

type Food struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Benefits    []string `json:"benefits" yaml:"benefits"`
	Nutrients   []string `json:"nutrients" yaml:"nutrients"`
	ServingSize string   `json:"serving_size" yaml:"serving_size"`
	Safe        bool     `json:"safe" yaml:"safe"`
	Notes       string   `json:"notes,omitempty" yaml:"notes"`
}

type FoodCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FoodCategories is the display order of the food list.
var FoodCategories = []FoodCategory{
	{ID: "protein", Name: "Proteins"},
	{ID: "dairy", Name: "Dairy"},
	{ID: "grains", Name: "Grains"},
	{ID: "fruits", Name: "Fruits"},
	{ID: "vegetables", Name: "Vegetables"},
	{ID: "fats", Name: "Healthy Fats"},
}

type FoodGroup struct {
	Category FoodCategory `json:"category"`
	Foods    []Food       `json:"foods"`
}

type Library struct {
	Articles []Article `yaml:"articles"`
	Foods    []Food    `yaml:"foods"`
}

func LoadLibrary(r io.Reader) (*Library, error) {
	var lib Library
	if err := yaml.NewDecoder(r).Decode(&lib); err != nil {
		return nil, fmt.Errorf("decode guide library: %w", err)
	}
	return &lib, nil
}

func DefaultLibrary() (*Library, error) {
	return LoadLibrary(bytes.NewReader(defaultLibraryYAML))
}

func (l *Library) Article(id string) (Article, bool) {
	for _, a := range l.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}

// FilterArticles matches the query against title and summary,
// case-insensitively. An empty query returns everything.
func (l *Library) FilterArticles(query string) []Article {
	q := strings.ToLower(query)
	out := make([]Article, 0, len(l.Articles))
	for _, a := range l.Articles {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Summary), q) {
			out = append(out, a)
		}
	}
	return out
}

// FilterFoods matches the query against the food name and its benefits.
func (l *Library) FilterFoods(query string) []Food {
	q := strings.ToLower(query)
	out := make([]Food, 0, len(l.Foods))
	for _, f := range l.Foods {
		if strings.Contains(strings.ToLower(f.Name), q) || containsAny(f.Benefits, q) {
			out = append(out, f)
		}
	}
	return out
}

// FoodsByCategory groups filtered foods in FoodCategories order, skipping
// empty groups.
func (l *Library) FoodsByCategory(query string) []FoodGroup {
	foods := l.FilterFoods(query)
	groups := make([]FoodGroup, 0, len(FoodCategories))
	for _, c := range FoodCategories {
		var members []Food
		for _, f := range foods {
			if f.Category == c.ID {
				members = append(members, f)
			}
		}
		if len(members) > 0 {
			groups = append(groups, FoodGroup{Category: c, Foods: members})
		}
	}
	return groups
}

func containsAny(values []string, q string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
