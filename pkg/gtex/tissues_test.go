package gtex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const colonTissueInfoJSON = `{
	"tissueInfo": [
		{
			"datasetId": "gtex_v8",
			"samplingSite": "Sigmoid colon mucosa/submucosa sample.",
			"tissueSite": "Colon",
			"tissueSiteDetail": "Colon - Sigmoid",
			"tissueSiteDetailAbbr": "CLNSGM",
			"tissueSiteDetailId": "Colon_Sigmoid",
			"uberonId": "0001159"
		},
		{
			"datasetId": "gtex_v8",
			"samplingSite": "Transverse colon sample.",
			"tissueSite": "Colon",
			"tissueSiteDetail": "Colon - Transverse",
			"tissueSiteDetailAbbr": "CLNTRN",
			"tissueSiteDetailId": "Colon_Transverse",
			"uberonId": "0001157"
		}
	]
}`

func TestTissueCatalog_ColonFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dataset/tissueInfo", r.URL.Path)
		assert.Equal(t, "Colon", r.URL.Query().Get("tissueSite"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, colonTissueInfoJSON)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	catalog, err := client.TissueInfo(context.Background(), TissueFilter{TissueSite: "Colon"})
	require.NoError(t, err)

	details, err := catalog.Tissues(TissueFieldSiteDetail)
	require.NoError(t, err)
	assert.Equal(t, []string{"Colon - Sigmoid", "Colon - Transverse"}, details)

	ids, err := catalog.Tissues(TissueFieldSiteDetailID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Colon_Sigmoid", "Colon_Transverse"}, ids)

	abbrs, err := catalog.Tissues(TissueFieldSiteDetailAbbr)
	require.NoError(t, err)
	assert.Equal(t, []string{"CLNSGM", "CLNTRN"}, abbrs)
}

func TestTissueCatalog_UnknownProjectionField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, colonTissueInfoJSON)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	catalog, err := client.TissueInfo(context.Background(), TissueFilter{})
	require.NoError(t, err)

	_, err = catalog.Tissues("uberonId")
	require.Error(t, err)
	var confErr *ConfigurationError
	assert.ErrorAs(t, err, &confErr)
	assert.Equal(t, "field", confErr.Field)
}

func TestTissueCatalog_EmptyFilterOmitsParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		_, hasSite := query["tissueSite"]
		_, hasAbbr := query["tissueSiteDetailAbbr"]
		_, hasID := query["tissueSiteDetailId"]
		assert.False(t, hasSite)
		assert.False(t, hasAbbr)
		assert.False(t, hasID)
		fmt.Fprint(w, colonTissueInfoJSON)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	catalog, err := client.TissueInfo(context.Background(), TissueFilter{})
	require.NoError(t, err)
	assert.Len(t, catalog.All(), 2)
}
