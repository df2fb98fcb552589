package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/casper-db/casper-go/v1/casper"
)

var (
	createDim     uint32
	createMaxSize uint32
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"col"},
	Short:   "Manage collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			cols, err := c.ListCollections(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDIM\tSIZE\tMAX_SIZE\tINDEX\tMUTABLE")
			for _, col := range cols {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%v\t%v\n", col.Name, col.Dimension, col.Size, col.MaxSize, col.HasIndex, col.Mutable)
			}
			return w.Flush()
		})
	},
}

var collectionInfoCmd = &cobra.Command{
	Use:   "info NAME",
	Short: "Show a collection as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			info, err := c.GetCollection(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		})
	},
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.CreateCollection(ctx, args[0], casper.CreateCollectionRequest{Dim: createDim, MaxSize: createMaxSize}); err != nil {
				return err
			}
			success(cmd, "collection %s created", args[0])
			return nil
		})
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.DeleteCollection(ctx, args[0]); err != nil {
				return err
			}
			success(cmd, "collection %s deleted", args[0])
			return nil
		})
	},
}

var vectorCmd = &cobra.Command{
	Use:   "vector",
	Short: "Read and write single vectors",
}

var vectorGetCmd = &cobra.Command{
	Use:   "get COLLECTION ID",
	Short: "Print a stored vector as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUint32(args[1])
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			rec, err := c.GetVector(ctx, args[0], id)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		})
	},
}

var vectorInsertCmd = &cobra.Command{
	Use:   "insert COLLECTION ID VECTOR_JSON",
	Short: "Insert a vector given as a JSON array",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUint32(args[1])
		if err != nil {
			return err
		}
		vec, err := parseVector(args[2])
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.InsertVector(ctx, args[0], casper.InsertRequest{ID: id, Vector: vec}); err != nil {
				return err
			}
			success(cmd, "vector %d inserted into %s", id, args[0])
			return nil
		})
	},
}

var vectorDeleteCmd = &cobra.Command{
	Use:   "delete COLLECTION ID",
	Short: "Delete a vector",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUint32(args[1])
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, c *casper.Client) error {
			if err := c.DeleteVector(ctx, args[0], id); err != nil {
				return err
			}
			success(cmd, "vector %d deleted from %s", id, args[0])
			return nil
		})
	},
}

func init() {
	collectionCreateCmd.Flags().Uint32Var(&createDim, "dim", 0, "vector dimension")
	collectionCreateCmd.Flags().Uint32Var(&createMaxSize, "max-size", 0, "maximum number of vectors")
	_ = collectionCreateCmd.MarkFlagRequired("dim")
	_ = collectionCreateCmd.MarkFlagRequired("max-size")

	collectionCmd.AddCommand(collectionListCmd, collectionInfoCmd, collectionCreateCmd, collectionDeleteCmd)
	vectorCmd.AddCommand(vectorGetCmd, vectorInsertCmd, vectorDeleteCmd)
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseVector(s string) ([]float32, error) {
	var vec []float32
	if err := json.Unmarshal([]byte(s), &vec); err != nil {
		return nil, fmt.Errorf("vector must be a JSON array of numbers: %w", err)
	}
	return vec, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
