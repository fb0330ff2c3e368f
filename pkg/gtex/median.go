package gtex

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

const medianGeneExpressionPath = "expression/medianGeneExpression"

// notEnoughData is the sentinel prefix the portal returns in place of a
// cluster string when too few genes or tissues were queried.
const notEnoughData = "Not enough data"

// MedianExpression is one record from the medianGeneExpression endpoint: the
// median expression of one gene in one tissue, in TPM.
type MedianExpression struct {
	DatasetID          string  `json:"datasetId"`
	GencodeID          string  `json:"gencodeId"`
	GeneSymbol         string  `json:"geneSymbol"`
	Median             float64 `json:"median"`
	TissueSiteDetailID string  `json:"tissueSiteDetailId"`
	Unit               string  `json:"unit"`
}

type clusterSet struct {
	Gene   string `json:"gene"`
	Tissue string `json:"tissue"`
}

// MedianGeneExpression wraps the validated response of the
// expression/medianGeneExpression endpoint, including the hierarchical
// clustering strings requested alongside the medians.
type MedianGeneExpression struct {
	records  []MedianExpression
	clusters *clusterSet

	genes   []string
	tissues []string
	medians map[string][]float64
}

// MedianGeneExpression fetches per-tissue median expression for the given
// genes, with hierarchical clustering requested on the query.
func (c *Client) MedianGeneExpression(ctx context.Context, gencodeIDs, tissueSiteDetailIDs []string) (*MedianGeneExpression, error) {
	if len(gencodeIDs) == 0 {
		return nil, newConfigurationError("gencodeIds", "at least one GENCODE id is required", gencodeIDs)
	}
	if len(tissueSiteDetailIDs) == 0 {
		return nil, newConfigurationError("tissueSiteDetailIds", "at least one tissue id is required", tissueSiteDetailIDs)
	}

	params := url.Values{}
	params.Set("hcluster", "true")
	params.Set("pageSize", "10000")
	params.Set("gencodeId", strings.Join(gencodeIDs, ","))
	params.Set("tissueSiteDetailId", strings.Join(tissueSiteDetailIDs, ","))

	var resp struct {
		MedianGeneExpression json.RawMessage `json:"medianGeneExpression"`
		Clusters             *clusterSet     `json:"clusters"`
	}
	if err := c.getJSON(ctx, medianGeneExpressionPath, params, &resp); err != nil {
		return nil, err
	}
	if resp.MedianGeneExpression == nil {
		return nil, newAPIError(medianGeneExpressionPath, `missing "medianGeneExpression" in response`, 0, nil)
	}

	var records []MedianExpression
	if err := json.Unmarshal(resp.MedianGeneExpression, &records); err != nil {
		return nil, newAPIError(medianGeneExpressionPath, "failed to parse median expression records", 0, err)
	}

	model := &MedianGeneExpression{
		records:  records,
		clusters: resp.Clusters,
		medians:  make(map[string][]float64),
	}

	// Gene and tissue order follow first appearance in the response.
	seenGenes := make(map[string]bool)
	for _, record := range records {
		if !seenGenes[record.GeneSymbol] {
			seenGenes[record.GeneSymbol] = true
			model.genes = append(model.genes, record.GeneSymbol)
		}
		if _, ok := model.medians[record.TissueSiteDetailID]; !ok {
			model.tissues = append(model.tissues, record.TissueSiteDetailID)
		}
		model.medians[record.TissueSiteDetailID] = append(model.medians[record.TissueSiteDetailID], record.Median)
	}

	return model, nil
}

// Records returns every median expression record in response order.
func (m *MedianGeneExpression) Records() []MedianExpression {
	out := make([]MedianExpression, len(m.records))
	copy(out, m.records)
	return out
}

// Genes returns the unique gene symbols in order of first appearance.
func (m *MedianGeneExpression) Genes() []string {
	out := make([]string, len(m.genes))
	copy(out, m.genes)
	return out
}

// Tissues returns the tissue ids in order of first appearance.
func (m *MedianGeneExpression) Tissues() []string {
	out := make([]string, len(m.tissues))
	copy(out, m.tissues)
	return out
}

// Medians returns, per tissue id, the medians of each gene in the same order
// as Genes. Together with Genes this is the label-sequence plus
// label-to-values shape the charting helpers consume.
func (m *MedianGeneExpression) Medians() map[string][]float64 {
	out := make(map[string][]float64, len(m.medians))
	for tissue, values := range m.medians {
		column := make([]float64, len(values))
		copy(column, values)
		out[tissue] = column
	}
	return out
}

// GeneCluster returns the Newick-like clustering string over genes. The
// second return is false when the server produced no clusters or reported
// insufficient data.
func (m *MedianGeneExpression) GeneCluster() (string, bool) {
	if m.clusters == nil || strings.HasPrefix(m.clusters.Gene, notEnoughData) {
		return "", false
	}
	return m.clusters.Gene, true
}

// TissueCluster returns the Newick-like clustering string over tissues. The
// second return is false when the server produced no clusters or reported
// insufficient data.
func (m *MedianGeneExpression) TissueCluster() (string, bool) {
	if m.clusters == nil || strings.HasPrefix(m.clusters.Tissue, notEnoughData) {
		return "", false
	}
	return m.clusters.Tissue, true
}
