package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupFlattened(t *testing.T) {
	acf := map[string]any{
		"requisitos_pregunta_1":     "¿Qué edad necesito?",
		"requisitos_respuesta_1":    "21 años o más.",
		"requisitos_pregunta_2":     "¿Necesito inglés?",
		"requisitos_respuesta_2":    "Sí, nivel conversacional.",
		"documentacion_pregunta_1":  "¿Qué documentos piden?",
		"documentacion_respuesta_1": "Pasaporte vigente.",
	}

	categories := GroupFlattened(acf)
	require.Len(t, categories, 2)

	// Spanish collation: Documentación before Requisitos.
	assert.Equal(t, "documentacion", categories[0].Key)
	assert.Equal(t, "Documentación", categories[0].Label)
	require.Len(t, categories[0].Questions, 1)

	assert.Equal(t, "Requisitos", categories[1].Label)
	require.Len(t, categories[1].Questions, 2)
	assert.Equal(t, "¿Qué edad necesito?", categories[1].Questions[0].Question)
	assert.Equal(t, "Sí, nivel conversacional.", categories[1].Questions[1].Answer)
}

func TestGroupFlattenedIgnoresUnknownKeys(t *testing.T) {
	acf := map[string]any{
		"requisitos_pregunta_1":  "P",
		"requisitos_respuesta_1": "R",
		"hero_title":             "ignored",
		"beneficios_pregunta_1":  "unknown section",
		"requisitos_pregunta":    "no index",
		"requisitos_pregunta_x":  "non numeric index",
		"requisitos_extra_1":     "unknown field",
	}

	categories := GroupFlattened(acf)
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Questions, 1)
}

func TestGroupFlattenedRequiresBothHalves(t *testing.T) {
	acf := map[string]any{
		"requisitos_pregunta_1":       "sin respuesta",
		"requisitos_respuesta_2":      "sin pregunta",
		"vida_a_bordo_pregunta_3":     "¿Cómo es la cabina?",
		"vida_a_bordo_respuesta_3":    "Compartida entre dos tripulantes.",
		"salarios_y_pagos_pregunta_1": "",
	}

	categories := GroupFlattened(acf)
	require.Len(t, categories, 1)
	assert.Equal(t, "vida_a_bordo", categories[0].Key)
	require.Len(t, categories[0].Questions, 1)
}

func TestGroupFlattenedEmptyInput(t *testing.T) {
	assert.Empty(t, GroupFlattened(nil))
	assert.Empty(t, GroupFlattened(map[string]any{}))
}

func TestGroupFlattenedQuestionOrderFollowsIndex(t *testing.T) {
	acf := map[string]any{
		"proceso_de_aplicacion_pregunta_10":  "décima",
		"proceso_de_aplicacion_respuesta_10": "r10",
		"proceso_de_aplicacion_pregunta_2":   "segunda",
		"proceso_de_aplicacion_respuesta_2":  "r2",
	}

	categories := GroupFlattened(acf)
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Questions, 2)
	assert.Equal(t, "segunda", categories[0].Questions[0].Question)
	assert.Equal(t, "décima", categories[0].Questions[1].Question)
}

func TestGroupTagged(t *testing.T) {
	entries := []TaggedEntry{
		{Tag: "requisitos", Question: "P2", Answer: "R2", Order: 2},
		{Tag: "requisitos", Question: "P1", Answer: "R1", Order: 1},
		{Tag: "documentacion", Question: "D1", Answer: "RD1", Order: 1},
		{Tag: "", Question: "sin tag", Answer: "x"},
		{Tag: "requisitos", Question: "", Answer: "sin pregunta"},
	}

	categories := GroupTagged(entries)
	require.Len(t, categories, 2)

	assert.Equal(t, "Documentación", categories[0].Label)
	assert.Equal(t, "Requisitos", categories[1].Label)
	require.Len(t, categories[1].Questions, 2)
	assert.Equal(t, "P1", categories[1].Questions[0].Question)
	assert.Equal(t, "P2", categories[1].Questions[1].Question)
}

func TestGroupTaggedUnknownTagFallsBackToKey(t *testing.T) {
	categories := GroupTagged([]TaggedEntry{
		{Tag: "beneficios", Question: "P", Answer: "R"},
	})
	require.Len(t, categories, 1)
	assert.Equal(t, "beneficios", categories[0].Key)
	assert.Equal(t, "beneficios", categories[0].Label)
}
