package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/casper-db/casper-go/v1/casper"
)

var (
	searchLimit      uint32
	searchCandidates uint32

	indexMetric       string
	indexQuantization string
	indexM            uint32
	indexM0           uint32
	indexEf           uint32
	indexPQ           string
	indexNormalize    bool
)

var searchCmd = &cobra.Command{
	Use:   "search COLLECTION VECTOR_JSON",
	Short: "Search a collection for the nearest vectors",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		vec, err := parseVector(args[1])
		if err != nil {
			return err
		}
		req := casper.SearchRequest{Vector: vec, Candidates: searchCandidates}
		if cmd.Flags().Changed("limit") {
			req.Limit = &searchLimit
		}
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			results, err := c.Search(ctx, args[0], req)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tID\tSCORE")
			for i, r := range results {
				fmt.Fprintf(w, "%d\t%d\t%g\n", i+1, r.ID, r.Score)
			}
			return w.Flush()
		})
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage collection indexes",
}

var indexCreateCmd = &cobra.Command{
	Use:   "create COLLECTION",
	Short: "Build an HNSW index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := casper.CreateHNSWIndexRequest{
			HNSW: casper.HNSWIndexConfig{
				Metric:         casper.ParseMetric(indexMetric),
				Quantization:   casper.ParseQuantization(indexQuantization),
				M:              indexM,
				M0:             indexM0,
				EfConstruction: indexEf,
			},
		}
		if indexPQ != "" {
			req.HNSW.PQName = &indexPQ
		}
		if cmd.Flags().Changed("normalize") {
			req.Normalization = &indexNormalize
		}
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.CreateHNSWIndex(ctx, args[0], req); err != nil {
				return err
			}
			success(cmd, "index created on %s", args[0])
			return nil
		})
	},
}

var indexDeleteCmd = &cobra.Command{
	Use:   "delete COLLECTION",
	Short: "Drop the index of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.DeleteIndex(ctx, args[0]); err != nil {
				return err
			}
			success(cmd, "index of %s deleted", args[0])
			return nil
		})
	},
}

func init() {
	searchCmd.Flags().Uint32Var(&searchLimit, "limit", 10, "maximum number of results")
	searchCmd.Flags().Uint32Var(&searchCandidates, "candidates", 0, "server-side candidate pool (defaults to limit)")

	f := indexCreateCmd.Flags()
	f.StringVar(&indexMetric, "metric", string(casper.MetricInnerProduct), "inner-product, euclidean or cosine")
	f.StringVar(&indexQuantization, "quantization", string(casper.QuantizationF32), "f32 or pq8")
	f.Uint32Var(&indexM, "m", 16, "links per node")
	f.Uint32Var(&indexM0, "m0", 32, "links per node on layer 0")
	f.Uint32Var(&indexEf, "ef-construction", 200, "candidate list size while building")
	f.StringVar(&indexPQ, "pq", "", "product quantizer name for pq8")
	f.BoolVar(&indexNormalize, "normalize", false, "normalize vectors before indexing")

	indexCmd.AddCommand(indexCreateCmd, indexDeleteCmd)
}
