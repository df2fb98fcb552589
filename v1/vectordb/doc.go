// Package vectordb defines Service, a backend-neutral interface for vector
// similarity search, together with its request and result types.
//
// Ids are strings at this level. Backends with numeric ids translate them and
// reject ids they cannot represent.
//
// Usage:
//
//	client, err := casper.NewClient(*casper.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	var db vectordb.Service = casper.NewVectorDBAdapter(client, casper.AdapterConfig{})
//
//	if err := db.EnsureCollection(ctx, "docs", 384); err != nil {
//	    return err
//	}
//	results, err := db.Search(ctx, vectordb.SearchRequest{
//	    CollectionName: "docs",
//	    Vector:         query,
//	    TopK:           10,
//	})
package vectordb
