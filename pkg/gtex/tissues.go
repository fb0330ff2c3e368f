package gtex

import (
	"context"
	"encoding/json"
	"net/url"
)

const tissueInfoPath = "dataset/tissueInfo"

// Projection fields accepted by TissueCatalog.Tissues.
const (
	TissueFieldSite           = "tissueSite"
	TissueFieldSiteDetail     = "tissueSiteDetail"
	TissueFieldSiteDetailAbbr = "tissueSiteDetailAbbr"
	TissueFieldSiteDetailID   = "tissueSiteDetailId"
)

// Tissue describes one sampled tissue in the GTEx dataset.
// TissueSiteDetailID is the canonical identifier used by all downstream
// expression queries.
type Tissue struct {
	DatasetID            string `json:"datasetId"`
	SamplingSite         string `json:"samplingSite"`
	TissueSite           string `json:"tissueSite"`
	TissueSiteDetail     string `json:"tissueSiteDetail"`
	TissueSiteDetailAbbr string `json:"tissueSiteDetailAbbr"`
	TissueSiteDetailID   string `json:"tissueSiteDetailId"`
	UberonID             string `json:"uberonId"`
}

// TissueFilter narrows the tissue catalog server-side. Empty fields are
// omitted from the query.
type TissueFilter struct {
	TissueSite           string
	TissueSiteDetailAbbr string
	TissueSiteDetailID   string
}

// TissueCatalog wraps the validated response of the dataset/tissueInfo
// endpoint.
type TissueCatalog struct {
	tissues []Tissue
}

// TissueInfo fetches the tissue catalog, optionally filtered.
func (c *Client) TissueInfo(ctx context.Context, filter TissueFilter) (*TissueCatalog, error) {
	params := url.Values{}
	if filter.TissueSite != "" {
		params.Set("tissueSite", filter.TissueSite)
	}
	if filter.TissueSiteDetailAbbr != "" {
		params.Set("tissueSiteDetailAbbr", filter.TissueSiteDetailAbbr)
	}
	if filter.TissueSiteDetailID != "" {
		params.Set("tissueSiteDetailId", filter.TissueSiteDetailID)
	}

	var resp struct {
		TissueInfo json.RawMessage `json:"tissueInfo"`
	}
	if err := c.getJSON(ctx, tissueInfoPath, params, &resp); err != nil {
		return nil, err
	}
	if resp.TissueInfo == nil {
		return nil, newAPIError(tissueInfoPath, `missing "tissueInfo" in response`, 0, nil)
	}

	var tissues []Tissue
	if err := json.Unmarshal(resp.TissueInfo, &tissues); err != nil {
		return nil, newAPIError(tissueInfoPath, "failed to parse tissue records", 0, err)
	}

	return &TissueCatalog{tissues: tissues}, nil
}

// All returns every tissue record in catalog order.
func (t *TissueCatalog) All() []Tissue {
	out := make([]Tissue, len(t.tissues))
	copy(out, t.tissues)
	return out
}

// Tissues projects the catalog to a single field. The field must be one of
// TissueFieldSite, TissueFieldSiteDetail, TissueFieldSiteDetailAbbr, or
// TissueFieldSiteDetailID.
func (t *TissueCatalog) Tissues(field string) ([]string, error) {
	switch field {
	case TissueFieldSite, TissueFieldSiteDetail, TissueFieldSiteDetailAbbr, TissueFieldSiteDetailID:
	default:
		return nil, newConfigurationError("field", "unknown tissue projection field", field)
	}

	out := make([]string, 0, len(t.tissues))
	for _, tissue := range t.tissues {
		switch field {
		case TissueFieldSite:
			out = append(out, tissue.TissueSite)
		case TissueFieldSiteDetail:
			out = append(out, tissue.TissueSiteDetail)
		case TissueFieldSiteDetailAbbr:
			out = append(out, tissue.TissueSiteDetailAbbr)
		case TissueFieldSiteDetailID:
			out = append(out, tissue.TissueSiteDetailID)
		}
	}
	return out, nil
}
