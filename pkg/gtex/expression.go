package gtex

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/montanaflynn/stats"
)

const geneExpressionPath = "expression/geneExpression"

// Subset selectors accepted by GeneExpressionQuery.SubsetBy.
const (
	SubsetBySex        = "sex"
	SubsetByAgeBracket = "ageBracket"
)

// GeneExpressionQuery identifies the genes and tissues to fetch raw
// expression samples for. SubsetBy optionally stratifies the samples by
// donor sex or age bracket.
type GeneExpressionQuery struct {
	GencodeIDs          []string
	TissueSiteDetailIDs []string
	SubsetBy            string
}

type expressionRecord struct {
	Data               []float64 `json:"data"`
	DatasetID          string    `json:"datasetId"`
	GencodeID          string    `json:"gencodeId"`
	GeneSymbol         string    `json:"geneSymbol"`
	TissueSiteDetailID string    `json:"tissueSiteDetailId"`
	Unit               string    `json:"unit"`
	SubsetGroup        string    `json:"subsetGroup"`
}

// TissueExpression summarizes the raw samples of one (gene, tissue, subset)
// combination. The median is computed client-side over the full sample
// sequence; an empty sequence yields 0.
type TissueExpression struct {
	TissueSiteDetailID string
	Median             float64
	SampleCount        int
	SubsetGroup        string
}

// GeneExpression wraps the validated response of the
// expression/geneExpression endpoint.
type GeneExpression struct {
	records []expressionRecord
}

// GeneExpression fetches raw expression samples for the queried genes.
func (c *Client) GeneExpression(ctx context.Context, query GeneExpressionQuery) (*GeneExpression, error) {
	if len(query.GencodeIDs) == 0 {
		return nil, newConfigurationError("gencodeIds", "at least one GENCODE id is required", query.GencodeIDs)
	}
	switch query.SubsetBy {
	case "", SubsetBySex, SubsetByAgeBracket:
	default:
		return nil, newConfigurationError("subsetBy", "unknown subset selector", query.SubsetBy)
	}

	params := url.Values{}
	params.Set("datasetId", DatasetID)
	params.Set("format", "json")
	params.Set("gencodeId", strings.Join(query.GencodeIDs, ","))
	if len(query.TissueSiteDetailIDs) > 0 {
		params.Set("tissueSiteDetailId", strings.Join(query.TissueSiteDetailIDs, ","))
	}
	if query.SubsetBy != "" {
		params.Set("attributeSubset", query.SubsetBy)
	}

	var resp struct {
		GeneExpression json.RawMessage `json:"geneExpression"`
	}
	if err := c.getJSON(ctx, geneExpressionPath, params, &resp); err != nil {
		return nil, err
	}
	if resp.GeneExpression == nil {
		return nil, newAPIError(geneExpressionPath, `missing "geneExpression" in response`, 0, nil)
	}

	var records []expressionRecord
	if err := json.Unmarshal(resp.GeneExpression, &records); err != nil {
		return nil, newAPIError(geneExpressionPath, "failed to parse expression records", 0, err)
	}

	return &GeneExpression{records: records}, nil
}

// Records returns one summary per (gene, tissue, subset) combination, in
// response order.
func (e *GeneExpression) Records() []TissueExpression {
	out := make([]TissueExpression, 0, len(e.records))
	for _, record := range e.records {
		out = append(out, TissueExpression{
			TissueSiteDetailID: record.TissueSiteDetailID,
			Median:             median(record.Data),
			SampleCount:        len(record.Data),
			SubsetGroup:        record.SubsetGroup,
		})
	}
	return out
}

// median computes the sample median. Empty input yields 0 rather than an
// error so that tissues without samples still chart.
func median(values []float64) float64 {
	m, err := stats.Median(values)
	if err != nil {
		// stats.Median only fails on empty input
		return 0
	}
	return m
}
