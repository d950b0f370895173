package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcaribbean/site-api/internal/config"
	"github.com/vipcaribbean/site-api/internal/logger"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.WordPressConfig{
		Domain:   srv.URL,
		Timeout:  2 * time.Second,
		PageSize: 3,
	}, logger.NewNop())
}

func record(id int, slug string) map[string]any {
	return map[string]any{
		"id":      id,
		"slug":    slug,
		"title":   map[string]string{"rendered": "Title " + slug},
		"content": map[string]string{"rendered": "<p>body</p>"},
	}
}

func TestGetBySlugFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/empleos", r.URL.Path)
		assert.Equal(t, "chef-de-partie", r.URL.Query().Get("slug"))
		json.NewEncoder(w).Encode([]any{record(7, "chef-de-partie")})
	}))

	rec, err := client.GetBySlug(context.Background(), TypeEmpleos, "chef-de-partie")
	require.NoError(t, err)
	assert.Equal(t, 7, rec.ID)
	assert.Equal(t, "Title chef-de-partie", rec.Title.Rendered)
}

func TestGetBySlugNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{})
	}))

	_, err := client.GetBySlug(context.Background(), TypeEmpleos, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestGetBySlugBackendDown(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetBySlug(context.Background(), TypePages, "quienes-somos")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestListAllPaginates(t *testing.T) {
	// 3 per page: pages of 3, 3 and 1 records. The short page stops the loop.
	total := 7
	var requests []string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		requests = append(requests, r.URL.RawQuery)

		var out []any
		for i := (page-1)*3 + 1; i <= page*3 && i <= total; i++ {
			out = append(out, record(i, fmt.Sprintf("candidato-%d", i)))
		}
		json.NewEncoder(w).Encode(out)
	}))

	records, err := client.ListAll(context.Background(), TypeCandidatos)
	require.NoError(t, err)
	assert.Len(t, records, total)
	assert.Len(t, requests, 3)
	assert.Equal(t, "candidato-1", records[0].Slug)
	assert.Equal(t, "candidato-7", records[6].Slug)
}

func TestListAllExactPageBoundary(t *testing.T) {
	// 6 records at page size 3: the empty third page ends accumulation.
	total := 6
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		out := []any{}
		for i := (page-1)*3 + 1; i <= page*3 && i <= total; i++ {
			out = append(out, record(i, fmt.Sprintf("c-%d", i)))
		}
		json.NewEncoder(w).Encode(out)
	}))

	records, err := client.ListAll(context.Background(), TypeCandidatos)
	require.NoError(t, err)
	assert.Len(t, records, total)
}

func TestListSlugs(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{record(1, "a"), record(2, "b")})
	}))

	slugs, err := client.ListSlugs(context.Background(), TypeEventos)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, slugs)
}

func TestRecordHelpers(t *testing.T) {
	rec := Record{
		ACF: map[string]any{
			"urgente":               true,
			"duracion_del_contrato": "6 meses",
			"cruise_line":           map[string]any{"post_title": "Royal Caribbean"},
		},
		Embedded: &Embedded{
			FeaturedMedia: []Media{{SourceURL: "https://cdn.example.com/a.jpg"}},
			Terms: [][]Term{{
				{ID: 4, Name: "Cocina", Slug: "cocina", Taxonomy: "categorias-empleo"},
			}},
		},
	}

	assert.True(t, rec.ACFBool("urgente"))
	assert.False(t, rec.ACFBool("missing"))
	assert.Equal(t, "6 meses", rec.ACFString("duracion_del_contrato"))
	assert.Equal(t, "", rec.ACFString("urgente")) // wrong type, not a panic
	assert.Equal(t, "Royal Caribbean", rec.ACFMap("cruise_line")["post_title"])
	assert.Equal(t, "https://cdn.example.com/a.jpg", rec.FeaturedImage())

	term := rec.TaxonomyTerm("categorias-empleo")
	require.NotNil(t, term)
	assert.Equal(t, "Cocina", term.Name)
	assert.Nil(t, rec.TaxonomyTerm("categorias-blog"))
	require.NotNil(t, rec.FirstTerm())
}

func TestErrorsDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrUnavailable))
}
