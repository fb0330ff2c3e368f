package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/w-gao/gtex-go/internal/report"
	"github.com/w-gao/gtex-go/pkg/gtex"
)

var (
	tissueSite   string
	tissueAbbr   string
	tissueID     string
	tissueField  string
	queryGenes   []string
	queryTissues []string
	subsetBy     string
	topLimit     int
	tissueGroups []string
	clusterAxis  string
)

var tissuesCmd = &cobra.Command{
	Use:   "tissues",
	Short: "List the GTEx tissue catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := client.TissueInfo(context.Background(), gtex.TissueFilter{
			TissueSite:           tissueSite,
			TissueSiteDetailAbbr: tissueAbbr,
			TissueSiteDetailID:   tissueID,
		})
		if err != nil {
			return err
		}
		values, err := catalog.Tissues(tissueField)
		if err != nil {
			return err
		}
		for _, value := range values {
			fmt.Println(value)
		}
		return nil
	},
}

var geneCmd = &cobra.Command{
	Use:   "gene <id>",
	Short: "Resolve a gene symbol or GENCODE id to its record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gene, err := client.LookupGene(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Symbol:      %s\n", gene.GeneSymbol)
		fmt.Printf("Gencode ID:  %s\n", gene.GencodeID)
		fmt.Printf("Entrez ID:   %d\n", gene.EntrezGeneID)
		fmt.Printf("Description: %s\n", gene.Description)
		return nil
	},
}

var genesCmd = &cobra.Command{
	Use:   "genes <id>...",
	Short: "Resolve multiple gene identifiers, preserving input order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := client.LookupGenes(context.Background(), args)
		if err != nil {
			return err
		}
		symbols := set.GeneSymbols()
		gencodeIDs := set.GencodeIDs()
		entrezIDs := set.EntrezGeneIDs()
		for i := range symbols {
			fmt.Printf("%-12s%-24s%d\n", symbols[i], gencodeIDs[i], entrezIDs[i])
		}
		return nil
	},
}

var expressionCmd = &cobra.Command{
	Use:   "expression",
	Short: "Summarize raw expression samples per tissue",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := client.GeneExpression(context.Background(), gtex.GeneExpressionQuery{
			GencodeIDs:          queryGenes,
			TissueSiteDetailIDs: queryTissues,
			SubsetBy:            subsetBy,
		})
		if err != nil {
			return err
		}
		for _, record := range report.SortExpression(model.Records()) {
			group := record.SubsetGroup
			if group == "" {
				group = "-"
			}
			fmt.Printf("%-44sMedian=%.3f TPM\tn=%d\tGroup=%s\n",
				record.TissueSiteDetailID, record.Median, record.SampleCount, group)
		}
		return nil
	},
}

var medianCmd = &cobra.Command{
	Use:   "median",
	Short: "Show median expression as a gene-by-tissue table",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := client.MedianGeneExpression(context.Background(), queryGenes, queryTissues)
		if err != nil {
			return err
		}
		table := report.MedianHeatmap(model.Genes(), model.Tissues(), model.Medians())
		if err := report.Render(os.Stdout, table); err != nil {
			return err
		}
		if cluster, ok := model.GeneCluster(); ok {
			fmt.Printf("\nGene cluster:   %s\n", cluster)
		}
		if cluster, ok := model.TissueCluster(); ok {
			fmt.Printf("Tissue cluster: %s\n", cluster)
		}
		return nil
	},
}

var topCmd = &cobra.Command{
	Use:   "top <tissueSiteDetailId>",
	Short: "List the top expressed genes of a tissue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := client.TopExpressedGenes(context.Background(), args[0], topLimit)
		if err != nil {
			return err
		}
		medians := model.Medians()
		for rank, symbol := range model.Symbols() {
			fmt.Printf("%4d  %-12s%.3f TPM\n", rank+1, symbol, medians[symbol])
		}
		return nil
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Group queried genes by expression similarity per tissue group",
	Long: `Group queried genes by expression similarity per tissue group.

Each --group flag names one tissue group as a comma-separated list of
tissueSiteDetailIds; the group's first tissue keys the output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups := make([][]string, 0, len(tissueGroups))
		for _, group := range tissueGroups {
			groups = append(groups, strings.Split(group, ","))
		}
		similar, err := gtex.SimilarExpression(context.Background(), client,
			queryGenes, groups, gtex.ClusterAxis(clusterAxis))
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(similar))
		for key := range similar {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("%s:\n", key)
			for _, set := range similar[key] {
				symbols := make([]string, 0, len(set))
				for symbol := range set {
					symbols = append(symbols, symbol)
				}
				sort.Strings(symbols)
				fmt.Printf("  {%s}\n", strings.Join(symbols, ", "))
			}
		}
		return nil
	},
}

func init() {
	tissuesCmd.Flags().StringVar(&tissueSite, "site", "", "filter by coarse tissue site")
	tissuesCmd.Flags().StringVar(&tissueAbbr, "abbr", "", "filter by tissue site detail abbreviation")
	tissuesCmd.Flags().StringVar(&tissueID, "id", "", "filter by tissue site detail id")
	tissuesCmd.Flags().StringVar(&tissueField, "field", gtex.TissueFieldSiteDetailID, "projection field")

	expressionCmd.Flags().StringSliceVar(&queryGenes, "genes", nil, "versioned GENCODE ids")
	expressionCmd.Flags().StringSliceVar(&queryTissues, "tissues", nil, "tissueSiteDetailIds")
	expressionCmd.Flags().StringVar(&subsetBy, "subset", "", "stratify samples by 'sex' or 'ageBracket'")

	medianCmd.Flags().StringSliceVar(&queryGenes, "genes", nil, "versioned GENCODE ids")
	medianCmd.Flags().StringSliceVar(&queryTissues, "tissues", nil, "tissueSiteDetailIds")

	topCmd.Flags().IntVar(&topLimit, "limit", 100, "number of genes to fetch")

	similarCmd.Flags().StringSliceVar(&queryGenes, "genes", nil, "versioned GENCODE ids")
	similarCmd.Flags().StringArrayVar(&tissueGroups, "group", nil, "tissue group (comma-separated ids, repeatable)")
	similarCmd.Flags().StringVar(&clusterAxis, "axis", string(gtex.ClusterGenes), "clustering axis: genes or tissues")

	rootCmd.AddCommand(tissuesCmd, geneCmd, genesCmd, expressionCmd, medianCmd, topCmd, similarCmd)
}
