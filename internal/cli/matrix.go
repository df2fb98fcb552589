package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/casper-db/casper-go/v1/casper"
)

var (
	uploadDim   uint32
	uploadChunk int

	pqDim uint32
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Manage stored matrices",
}

var matrixListCmd = &cobra.Command{
	Use:   "list",
	Short: "List matrices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			list, err := c.ListMatrices(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDIM\tROWS\tENABLED")
			for _, m := range list {
				fmt.Fprintf(w, "%s\t%d\t%d\t%v\n", m.Name, m.Dim, m.Len, m.Enabled)
			}
			return w.Flush()
		})
	},
}

var matrixInfoCmd = &cobra.Command{
	Use:   "info NAME",
	Short: "Show a matrix as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			info, err := c.GetMatrix(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		})
	},
}

var matrixUploadCmd = &cobra.Command{
	Use:   "upload NAME FILE",
	Short: "Upload a matrix from a JSON file holding an array of rows",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, dim, err := readMatrixFile(args[1])
		if err != nil {
			return err
		}
		if uploadDim != 0 && uploadDim != dim {
			return fmt.Errorf("file rows have %d values, --dim is %d", dim, uploadDim)
		}
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			res, err := c.UploadMatrix(ctx, casper.UploadMatrixRequest{Name: args[0], Dim: dim, Values: values, ChunkFloats: uploadChunk})
			if err != nil {
				return err
			}
			success(cmd, "%s: %d vectors in %d chunks", res.Message, res.TotalVectors, res.TotalChunks)
			return nil
		})
	},
}

var matrixDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a matrix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.DeleteMatrix(ctx, args[0]); err != nil {
				return err
			}
			success(cmd, "matrix %s deleted", args[0])
			return nil
		})
	},
}

var pqCmd = &cobra.Command{
	Use:   "pq",
	Short: "Manage product quantizers",
}

var pqListCmd = &cobra.Command{
	Use:   "list",
	Short: "List product quantizers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			list, err := c.ListPQs(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, list)
		})
	},
}

var pqInfoCmd = &cobra.Command{
	Use:   "info NAME",
	Short: "Show a product quantizer as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			info, err := c.GetPQ(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		})
	},
}

var pqCreateCmd = &cobra.Command{
	Use:   "create NAME CODEBOOK...",
	Short: "Create a product quantizer from codebook matrices",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.CreatePQ(ctx, args[0], casper.CreatePQRequest{Dim: pqDim, Codebooks: args[1:]}); err != nil {
				return err
			}
			success(cmd, "pq %s created", args[0])
			return nil
		})
	},
}

var pqDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a product quantizer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.DeletePQ(ctx, args[0]); err != nil {
				return err
			}
			success(cmd, "pq %s deleted", args[0])
			return nil
		})
	},
}

func init() {
	matrixUploadCmd.Flags().Uint32Var(&uploadDim, "dim", 0, "expected row dimension")
	matrixUploadCmd.Flags().IntVar(&uploadChunk, "chunk-floats", 0, "values per frame (defaults to CASPER_CHUNK_FLOATS)")
	pqCreateCmd.Flags().Uint32Var(&pqDim, "dim", 0, "vector dimension")
	_ = pqCreateCmd.MarkFlagRequired("dim")

	matrixCmd.AddCommand(matrixListCmd, matrixInfoCmd, matrixUploadCmd, matrixDeleteCmd)
	pqCmd.AddCommand(pqListCmd, pqInfoCmd, pqCreateCmd, pqDeleteCmd)
}

// readMatrixFile loads [[...], [...]] and flattens it row by row.
func readMatrixFile(path string) ([]float32, uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	var rows [][]float32
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, 0, fmt.Errorf("%s holds no rows", path)
	}

	dim := len(rows[0])
	values := make([]float32, 0, dim*len(rows))
	for i, row := range rows {
		if len(row) != dim {
			return nil, 0, fmt.Errorf("row %d has %d values, expected %d", i, len(row), dim)
		}
		values = append(values, row...)
	}
	return values, uint32(dim), nil
}
