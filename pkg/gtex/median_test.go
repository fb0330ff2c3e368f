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

const medianExpressionJSON = `{
	"clusters": {
		"gene": "(ENSG00000182240.15:14.2,ENSG00000130234.10:14.2)",
		"tissue": "((Esophagus_Mucosa:9.1,Esophagus_Muscularis:9.1):12.4,Esophagus_Gastroesophageal_Junction:21.5)"
	},
	"medianGeneExpression": [
		{
			"datasetId": "gtex_v8",
			"gencodeId": "ENSG00000182240.15",
			"geneSymbol": "BACE2",
			"median": 12.56,
			"tissueSiteDetailId": "Esophagus_Gastroesophageal_Junction",
			"unit": "TPM"
		},
		{
			"datasetId": "gtex_v8",
			"gencodeId": "ENSG00000130234.10",
			"geneSymbol": "ACE2",
			"median": 0.774831,
			"tissueSiteDetailId": "Esophagus_Gastroesophageal_Junction",
			"unit": "TPM"
		},
		{
			"datasetId": "gtex_v8",
			"gencodeId": "ENSG00000182240.15",
			"geneSymbol": "BACE2",
			"median": 19.42,
			"tissueSiteDetailId": "Esophagus_Mucosa",
			"unit": "TPM"
		},
		{
			"datasetId": "gtex_v8",
			"gencodeId": "ENSG00000130234.10",
			"geneSymbol": "ACE2",
			"median": 1.2,
			"tissueSiteDetailId": "Esophagus_Mucosa",
			"unit": "TPM"
		}
	]
}`

func TestMedianGeneExpression_OrderingAndMedians(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/expression/medianGeneExpression", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("hcluster"))
		assert.Equal(t, "10000", r.URL.Query().Get("pageSize"))
		fmt.Fprint(w, medianExpressionJSON)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	model, err := client.MedianGeneExpression(context.Background(),
		[]string{"ENSG00000182240.15", "ENSG00000130234.10"},
		[]string{"Esophagus_Gastroesophageal_Junction", "Esophagus_Mucosa"})
	require.NoError(t, err)

	// order of first appearance in the response
	assert.Equal(t, []string{"BACE2", "ACE2"}, model.Genes())
	assert.Equal(t, []string{"Esophagus_Gastroesophageal_Junction", "Esophagus_Mucosa"}, model.Tissues())

	medians := model.Medians()
	require.Len(t, medians, 2)
	assert.Equal(t, []float64{12.56, 0.774831}, medians["Esophagus_Gastroesophageal_Junction"])
	assert.Equal(t, []float64{19.42, 1.2}, medians["Esophagus_Mucosa"])

	assert.Len(t, model.Records(), 4)
}

func TestMedianGeneExpression_Clusters(t *testing.T) {
	tests := []struct {
		name          string
		clustersJSON  string
		expectGene    bool
		expectTissue  bool
		expectGeneStr string
	}{
		{
			name:          "both clusters present",
			clustersJSON:  `"clusters": {"gene": "(A:1,B:1)", "tissue": "(T1:2,T2:2)"},`,
			expectGene:    true,
			expectTissue:  true,
			expectGeneStr: "(A:1,B:1)",
		},
		{
			name:         "gene cluster has insufficient data",
			clustersJSON: `"clusters": {"gene": "Not enough data to cluster", "tissue": "(T1:2,T2:2)"},`,
			expectGene:   false,
			expectTissue: true,
		},
		{
			name:         "tissue cluster has insufficient data",
			clustersJSON: `"clusters": {"gene": "(A:1,B:1)", "tissue": "Not enough data to cluster"},`,
			expectGene:   true,
			expectTissue: false,
		},
		{
			name:         "clusters absent entirely",
			clustersJSON: ``,
			expectGene:   false,
			expectTissue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{%s "medianGeneExpression": []}`, tt.clustersJSON)
			}))
			defer server.Close()

			client, err := NewClient(Config{BaseURL: server.URL})
			require.NoError(t, err)

			model, err := client.MedianGeneExpression(context.Background(),
				[]string{"ENSG00000182240.15"}, []string{"Thyroid"})
			require.NoError(t, err)

			gene, ok := model.GeneCluster()
			assert.Equal(t, tt.expectGene, ok)
			if tt.expectGeneStr != "" {
				assert.Equal(t, tt.expectGeneStr, gene)
			}
			if !ok {
				assert.Empty(t, gene)
			}

			_, ok = model.TissueCluster()
			assert.Equal(t, tt.expectTissue, ok)
		})
	}
}

func TestMedianGeneExpression_InputValidation(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	var confErr *ConfigurationError

	_, err = client.MedianGeneExpression(context.Background(), nil, []string{"Thyroid"})
	require.ErrorAs(t, err, &confErr)

	_, err = client.MedianGeneExpression(context.Background(), []string{"ENSG00000182240.15"}, nil)
	require.ErrorAs(t, err, &confErr)

	assert.Zero(t, requests)
}

func TestMedianGeneExpression_MissingTopLevelKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"clusters": {"gene": "", "tissue": ""}}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.MedianGeneExpression(context.Background(),
		[]string{"ENSG00000182240.15"}, []string{"Thyroid"})
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}
