package faq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcaribbean/site-api/internal/config"
	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/wordpress"
)

func testAdapter(t *testing.T, source Source, routes map[string]any) *Adapter {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)

	wp := wordpress.NewClient(&config.WordPressConfig{
		Domain:   srv.URL,
		Timeout:  2 * time.Second,
		PageSize: 100,
	}, logger.NewNop())
	return NewAdapter(wp, source, logger.NewNop())
}

func TestCategoriesFlattenedSource(t *testing.T) {
	adapter := testAdapter(t, SourceFlattened, map[string]any{
		"/wp-json/wp/v2/pages": []map[string]any{
			{
				"id":   1,
				"slug": PageSlug,
				"acf": map[string]any{
					"requisitos_pregunta_1":  "¿Qué edad necesito?",
					"requisitos_respuesta_1": "21 años o más.",
					"hero_title":             "Preguntas Frecuentes",
				},
			},
		},
	})

	categories, err := adapter.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Requisitos", categories[0].Label)
}

func TestCategoriesTaggedSource(t *testing.T) {
	adapter := testAdapter(t, SourceTagged, map[string]any{
		"/wp-json/wp/v2/faqs": []map[string]any{
			{
				"id":      1,
				"title":   map[string]string{"rendered": "¿Qué documentos piden?"},
				"content": map[string]string{"rendered": "<p>Pasaporte vigente.</p>"},
				"acf":     map[string]any{"seccion": "documentacion", "orden": 1},
			},
			{
				"id":      2,
				"title":   map[string]string{"rendered": "¿Necesito visa?"},
				"content": map[string]string{"rendered": "<p>Depende del puerto base.</p>"},
				"acf":     map[string]any{"seccion": "documentacion", "orden": 2},
			},
		},
	})

	categories, err := adapter.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Documentación", categories[0].Label)
	require.Len(t, categories[0].Questions, 2)
	assert.Equal(t, "¿Qué documentos piden?", categories[0].Questions[0].Question)
}

func TestCategoriesBackendDown(t *testing.T) {
	wp := wordpress.NewClient(&config.WordPressConfig{
		Domain:   "http://127.0.0.1:1",
		Timeout:  200 * time.Millisecond,
		PageSize: 100,
	}, logger.NewNop())
	adapter := NewAdapter(wp, SourceFlattened, logger.NewNop())

	_, err := adapter.Categories(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, wordpress.ErrUnavailable)
}
