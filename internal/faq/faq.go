// Package faq groups frequently asked questions into labeled categories.
// The backend publishes FAQs in two shapes: a flattened custom-field map on
// a single page, and a dedicated tagged content type. Both shapes normalize
// to the same []Category contract; the Source kind selects the parser.
package faq

import (
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Source selects which backend shape the adapter reads.
type Source int

const (
	// SourceFlattened reads question/answer pairs from the flattened
	// custom-field map on the FAQ page.
	SourceFlattened Source = iota
	// SourceTagged reads the dedicated FAQ content type, where each record
	// carries a section tag and an explicit order.
	SourceTagged
)

type Item struct {
	Question string `json:"pregunta"`
	Answer   string `json:"respuesta"`
}

type Category struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Questions []Item `json:"preguntas"`
}

// flattenedKeyPattern matches the flattened field names: a known section,
// the field half, and a 1-based index. Everything else in the map is
// ignored.
var flattenedKeyPattern = regexp.MustCompile(
	`^(requisitos|proceso_de_aplicacion|vida_a_bordo|salarios_y_pagos|documentacion)_(pregunta|respuesta)_(\d+)$`)

var sectionLabels = map[string]string{
	"requisitos":            "Requisitos",
	"proceso_de_aplicacion": "Proceso de Aplicación",
	"vida_a_bordo":          "Vida a Bordo",
	"salarios_y_pagos":      "Salarios y Pagos",
	"documentacion":         "Documentación",
}

// LabelFor returns the display label for a section key, falling back to the
// key itself for tags the backend adds later.
func LabelFor(key string) string {
	if label, ok := sectionLabels[key]; ok {
		return label
	}
	return key
}

// GroupFlattened builds categories from the flattened custom-field map. A
// question is emitted only when both the pregunta and respuesta halves exist
// for the same index; categories that end up with no questions are omitted.
func GroupFlattened(acf map[string]any) []Category {
	type pair struct {
		question string
		answer   string
	}
	sections := make(map[string]map[int]*pair)

	for key, raw := range acf {
		m := flattenedKeyPattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		value, ok := raw.(string)
		if !ok || value == "" {
			continue
		}
		section, field := m[1], m[2]
		index, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		if sections[section] == nil {
			sections[section] = make(map[int]*pair)
		}
		if sections[section][index] == nil {
			sections[section][index] = &pair{}
		}
		if field == "pregunta" {
			sections[section][index].question = value
		} else {
			sections[section][index].answer = value
		}
	}

	var categories []Category
	for section, pairs := range sections {
		indexes := make([]int, 0, len(pairs))
		for index := range pairs {
			indexes = append(indexes, index)
		}
		sort.Ints(indexes)

		var items []Item
		for _, index := range indexes {
			p := pairs[index]
			if p.question == "" || p.answer == "" {
				continue
			}
			items = append(items, Item{Question: p.question, Answer: p.answer})
		}
		if len(items) == 0 {
			continue
		}
		categories = append(categories, Category{
			Key:       section,
			Label:     LabelFor(section),
			Questions: items,
		})
	}

	sortCategories(categories)
	return categories
}

// TaggedEntry is one record from the dedicated FAQ content type.
type TaggedEntry struct {
	Tag      string
	Question string
	Answer   string
	Order    int
}

// GroupTagged builds categories from tagged records: grouped by tag,
// questions ordered ascending within each category. Entries missing a tag or
// either text half are skipped.
func GroupTagged(entries []TaggedEntry) []Category {
	grouped := make(map[string][]TaggedEntry)
	for _, entry := range entries {
		if entry.Tag == "" || entry.Question == "" || entry.Answer == "" {
			continue
		}
		grouped[entry.Tag] = append(grouped[entry.Tag], entry)
	}

	var categories []Category
	for tag, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Order < group[j].Order
		})
		items := make([]Item, 0, len(group))
		for _, entry := range group {
			items = append(items, Item{Question: entry.Question, Answer: entry.Answer})
		}
		categories = append(categories, Category{
			Key:       tag,
			Label:     LabelFor(tag),
			Questions: items,
		})
	}

	sortCategories(categories)
	return categories
}

// sortCategories orders categories by label with Spanish collation so
// accented labels land where a reader expects them.
func sortCategories(categories []Category) {
	coll := collate.New(language.Spanish)
	sort.SliceStable(categories, func(i, j int) bool {
		return coll.CompareString(categories[i].Label, categories[j].Label) < 0
	})
}
