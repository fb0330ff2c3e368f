package gtex

import (
	"context"
	"strings"
)

// ClusterAxis selects which clustering string SimilarExpression decomposes.
type ClusterAxis string

const (
	ClusterGenes   ClusterAxis = "genes"
	ClusterTissues ClusterAxis = "tissues"
)

// SymbolSet is an unordered set of gene symbols that co-occur within one
// parenthesis-delimited span of a clustering string.
type SymbolSet map[string]struct{}

// Contains reports whether the set holds the given symbol.
func (s SymbolSet) Contains(symbol string) bool {
	_, ok := s[symbol]
	return ok
}

// SimilarExpression groups the queried genes by expression similarity,
// per tissue group. For each group it fetches median expression with
// clustering and decomposes the selected cluster string into spans of
// co-occurring gene symbols, keyed by the group's first tissue id. A group
// whose cluster is absent or reported as insufficient maps to an empty list;
// that is a normal result, not an error.
//
// The decomposition deliberately flattens the notation by sequential splits
// on "(", ")", "," and ":" rather than parsing it. Bracket structure is used
// only to chunk members into spans, so clusterings nested deeper than two
// levels yield spans that do not correspond to a single subtree.
func SimilarExpression(ctx context.Context, c *Client, gencodeIDs []string, tissueGroups [][]string, axis ClusterAxis) (map[string][]SymbolSet, error) {
	if len(gencodeIDs) == 0 {
		return nil, newConfigurationError("gencodeIds", "at least one GENCODE id is required", gencodeIDs)
	}
	if len(tissueGroups) == 0 {
		return nil, newConfigurationError("tissueGroups", "at least one tissue group is required", tissueGroups)
	}
	for _, group := range tissueGroups {
		if len(group) == 0 {
			return nil, newConfigurationError("tissueGroups", "tissue groups cannot be empty", tissueGroups)
		}
	}
	switch axis {
	case ClusterGenes, ClusterTissues:
	default:
		return nil, newConfigurationError("axis", "unknown clustering axis", axis)
	}

	valid := make(map[string]bool, len(gencodeIDs))
	for _, id := range gencodeIDs {
		valid[id] = true
	}

	out := make(map[string][]SymbolSet, len(tissueGroups))
	for _, group := range tissueGroups {
		key := group[0]
		out[key] = []SymbolSet{}

		model, err := c.MedianGeneExpression(ctx, gencodeIDs, group)
		if err != nil {
			return nil, err
		}

		var cluster string
		var ok bool
		if axis == ClusterGenes {
			cluster, ok = model.GeneCluster()
		} else {
			cluster, ok = model.TissueCluster()
		}
		if !ok {
			continue
		}

		for _, fragment := range strings.Split(cluster, "(") {
			for _, span := range strings.Split(fragment, ")") {
				symbols := SymbolSet{}
				for _, leaf := range strings.Split(span, ",") {
					for _, token := range strings.Split(leaf, ":") {
						// keep only tokens that exactly match a queried id;
						// branch lengths and stray punctuation fall out here
						if !valid[token] {
							continue
						}
						gene, err := c.LookupGene(ctx, token)
						if err != nil {
							return nil, err
						}
						symbols[gene.GeneSymbol] = struct{}{}
					}
				}
				if len(symbols) > 0 {
					out[key] = append(out[key], symbols)
				}
			}
		}
	}

	return out, nil
}
