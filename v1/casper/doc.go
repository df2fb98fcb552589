// Package casper is a client for the Casper vector database.
//
// Casper exposes two transports and the client uses both behind one facade:
// unary operations on collections, vectors, indexes, matrices and product
// quantizers go over HTTP with JSON bodies, and matrix uploads go over a
// client-streaming gRPC call. Callers never pick a transport.
//
// # Creating a client
//
//	cfg := casper.FromHost("localhost", 8080, 50051).
//	    WithTimeout(10 * time.Second)
//
//	client, err := casper.NewClient(*cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// NewConfigFromEnv reads the same settings from CASPER_* environment
// variables. The gRPC connection is opened lazily, so creating a client does
// not contact the server.
//
// # Collections and vectors
//
//	err = client.CreateCollection(ctx, "docs", casper.CreateCollectionRequest{Dim: 128, MaxSize: 10000})
//	err = client.InsertVector(ctx, "docs", casper.InsertRequest{ID: 1, Vector: vec})
//
//	limit := uint32(5)
//	hits, err := client.Search(ctx, "docs", casper.SearchRequest{Vector: query, Limit: &limit})
//
// Several writes can be grouped into one request:
//
//	outcome, err := client.BatchUpdate(ctx, "docs", casper.NewBatch().
//	    Insert(2, v2).
//	    Delete(1).
//	    Request())
//
// # Indexes
//
//	err = client.CreateHNSWIndex(ctx, "docs", casper.CreateHNSWIndexRequest{
//	    HNSW: casper.HNSWIndexConfig{
//	        Metric:         casper.MetricInnerProduct,
//	        Quantization:   casper.QuantizationF32,
//	        M:              16,
//	        M0:             32,
//	        EfConstruction: 200,
//	    },
//	})
//
// # Matrices
//
// UploadMatrix sends a header frame followed by data frames of at most
// ChunkFloats values each and waits for the server acknowledgment:
//
//	res, err := client.UploadMatrix(ctx, casper.UploadMatrixRequest{
//	    Name:   "codebook-0",
//	    Dim:    16,
//	    Values: values, // rows concatenated, len(values) % 16 == 0
//	})
//
// # Errors
//
// Every error carries a kind: ValidationError is returned before any network
// call, RequestError for non-success statuses and transport failures,
// NotFoundError for 404, DecodeError for unexpected success bodies and
// StreamError for failed uploads. Status-specific causes are reachable with
// errors.Is:
//
//	if errors.Is(err, casper.ErrDimensionMismatch) { ... }
//	if casper.IsNotFound(err) { ... }
//
// The client never retries.
//
// # Observability
//
// WithObserver reports every operation to an observability.Observer (the
// metrics package provides one) and WithTracer wraps operations in spans.
// FXModule wires the client, the optional logger, observer and tracer, and a
// vectordb.Service adapter into an fx application.
package casper
