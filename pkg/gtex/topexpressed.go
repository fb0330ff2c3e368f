package gtex

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

const topExpressedGenePath = "expression/topExpressedGene"

const defaultTopGenes = 100

// TopExpressedGenes wraps the validated response of the
// expression/topExpressedGene endpoint: the highest-expressed genes of one
// tissue, in descending median order as ranked by the server.
type TopExpressedGenes struct {
	records []MedianExpression
}

// TopExpressedGenes fetches the top expressed genes of a tissue. limit
// bounds the number of genes returned and defaults to 100.
func (c *Client) TopExpressedGenes(ctx context.Context, tissueSiteDetailID string, limit int) (*TopExpressedGenes, error) {
	tissueSiteDetailID = strings.TrimSpace(tissueSiteDetailID)
	if tissueSiteDetailID == "" {
		return nil, newConfigurationError("tissueSiteDetailId", "tissue id cannot be empty", tissueSiteDetailID)
	}
	if limit <= 0 {
		limit = defaultTopGenes
	}

	params := url.Values{}
	params.Set("datasetId", DatasetID)
	params.Set("tissueSiteDetailId", tissueSiteDetailID)
	params.Set("sortBy", "median")
	params.Set("sortDirection", "desc")
	params.Set("pageSize", strconv.Itoa(limit))

	var resp struct {
		TopExpressedGene json.RawMessage `json:"topExpressedGene"`
	}
	if err := c.getJSON(ctx, topExpressedGenePath, params, &resp); err != nil {
		return nil, err
	}
	if resp.TopExpressedGene == nil {
		return nil, newAPIError(topExpressedGenePath, `missing "topExpressedGene" in response`, 0, nil)
	}

	var records []MedianExpression
	if err := json.Unmarshal(resp.TopExpressedGene, &records); err != nil {
		return nil, newAPIError(topExpressedGenePath, "failed to parse top expressed records", 0, err)
	}

	return &TopExpressedGenes{records: records}, nil
}

// Median reports whether a gene is among the top expressed and, if so, its
// median expression. A non-empty gencodeID takes priority over the symbol
// when both are supplied.
func (t *TopExpressedGenes) Median(geneSymbol, gencodeID string) (float64, bool) {
	for _, record := range t.records {
		if gencodeID != "" {
			if record.GencodeID == gencodeID {
				return record.Median, true
			}
			continue
		}
		if record.GeneSymbol == geneSymbol {
			return record.Median, true
		}
	}
	return 0, false
}

// Symbols returns the gene symbols in server rank order.
func (t *TopExpressedGenes) Symbols() []string {
	out := make([]string, 0, len(t.records))
	for _, record := range t.records {
		out = append(out, record.GeneSymbol)
	}
	return out
}

// Medians returns a gene symbol to median expression mapping. Use Symbols
// for the rank ordering.
func (t *TopExpressedGenes) Medians() map[string]float64 {
	out := make(map[string]float64, len(t.records))
	for _, record := range t.records {
		out[record.GeneSymbol] = record.Median
	}
	return out
}
