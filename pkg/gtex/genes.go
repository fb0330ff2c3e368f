package gtex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const genePath = "reference/gene"

// GeneTypeProteinCoding is the only gene type exposed by list accessors.
const GeneTypeProteinCoding = "protein coding"

// Gene describes one gene record from the reference/gene endpoint.
type Gene struct {
	EntrezGeneID int    `json:"entrezGeneId"`
	GencodeID    string `json:"gencodeId"`
	GeneSymbol   string `json:"geneSymbol"`
	GeneType     string `json:"geneType"`
	Description  string `json:"description"`
}

// queryGenes performs the shared reference/gene fetch for one or more
// comma-joined gene identifiers and validates the top-level "gene" key.
func (c *Client) queryGenes(ctx context.Context, geneID string) ([]Gene, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("geneId", geneID)

	var resp struct {
		Gene json.RawMessage `json:"gene"`
	}
	if err := c.getJSON(ctx, genePath, params, &resp); err != nil {
		return nil, err
	}
	if resp.Gene == nil {
		return nil, newAPIError(genePath, `missing "gene" in response`, 0, nil)
	}

	var genes []Gene
	if err := json.Unmarshal(resp.Gene, &genes); err != nil {
		return nil, newAPIError(genePath, "failed to parse gene records", 0, err)
	}
	return genes, nil
}

// LookupGene resolves a single gene identifier to its record. The identifier
// may be a gene symbol, a versioned GENCODE id, or an un-versioned GENCODE
// id; all three forms resolve to the same record. Only protein coding genes
// are considered. A GENCODE-id prefix match takes priority over a
// case-insensitive symbol match, and the first qualifying record wins.
func (c *Client) LookupGene(ctx context.Context, geneID string) (*Gene, error) {
	geneID = strings.TrimSpace(geneID)
	if geneID == "" {
		return nil, newConfigurationError("geneId", "gene identifier cannot be empty", geneID)
	}

	genes, err := c.queryGenes(ctx, geneID)
	if err != nil {
		return nil, err
	}

	for i := range genes {
		gene := genes[i]
		if gene.GeneType != GeneTypeProteinCoding {
			continue
		}
		if strings.HasPrefix(geneID, "ENS") {
			if strings.HasPrefix(gene.GencodeID, geneID) {
				return &gene, nil
			}
			continue
		}
		if strings.EqualFold(gene.GeneSymbol, geneID) {
			// there may be more matches, but the first one wins
			return &gene, nil
		}
	}

	return nil, newAPIError(genePath, fmt.Sprintf("no protein coding gene matched %q", geneID), 0, nil)
}

// GeneSet wraps the records of a multi-gene reference/gene lookup. Accessors
// preserve the input query's ordering and silently exclude records that are
// not protein coding.
type GeneSet struct {
	genes []Gene
}

// LookupGenes resolves a list of gene identifiers in one query. Each entry
// may be a gene symbol, a versioned GENCODE id, or an un-versioned GENCODE
// id.
func (c *Client) LookupGenes(ctx context.Context, geneIDs []string) (*GeneSet, error) {
	if len(geneIDs) == 0 {
		return nil, newConfigurationError("geneIds", "at least one gene identifier is required", geneIDs)
	}

	genes, err := c.queryGenes(ctx, strings.Join(geneIDs, ","))
	if err != nil {
		return nil, err
	}
	return &GeneSet{genes: genes}, nil
}

// All returns every record in response order, including non protein coding
// entries.
func (s *GeneSet) All() []Gene {
	out := make([]Gene, len(s.genes))
	copy(out, s.genes)
	return out
}

// GencodeIDs returns the GENCODE ids of the protein coding genes, in input
// order.
func (s *GeneSet) GencodeIDs() []string {
	out := make([]string, 0, len(s.genes))
	for _, gene := range s.genes {
		if gene.GeneType == GeneTypeProteinCoding {
			out = append(out, gene.GencodeID)
		}
	}
	return out
}

// GeneSymbols returns the symbols of the protein coding genes, in input
// order.
func (s *GeneSet) GeneSymbols() []string {
	out := make([]string, 0, len(s.genes))
	for _, gene := range s.genes {
		if gene.GeneType == GeneTypeProteinCoding {
			out = append(out, gene.GeneSymbol)
		}
	}
	return out
}

// EntrezGeneIDs returns the Entrez ids of the protein coding genes, in input
// order.
func (s *GeneSet) EntrezGeneIDs() []int {
	out := make([]int, 0, len(s.genes))
	for _, gene := range s.genes {
		if gene.GeneType == GeneTypeProteinCoding {
			out = append(out, gene.EntrezGeneID)
		}
	}
	return out
}
