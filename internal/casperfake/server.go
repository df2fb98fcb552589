// Package casperfake is an in-memory Casper server for tests. It serves the
// HTTP API on an httptest server and the matrix upload stream on an
// in-process gRPC listener.
package casperfake

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/casper-db/casper-go/v1/casper/matrixpb"
)

const bufSize = 1 << 20

// Request is an HTTP request as seen by the fake.
type Request struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// Upload is a matrix upload as seen by the fake.
type Upload struct {
	Name        string
	Dimension   uint32
	TotalChunks uint32
	Frames      [][]float32
	Metadata    map[string][]string
}

// Server holds the fake's state. All methods are safe for concurrent use.
type Server struct {
	mu          sync.Mutex
	collections map[string]*collection
	matrices    map[string]*matrix
	pqs         map[string]*pq
	requests    []Request
	uploads     []Upload

	searchJSON       bool
	batchItemResults bool
	uploadFailAfter  int

	http     *httptest.Server
	grpc     *grpc.Server
	listener *bufconn.Listener
}

// New starts both transports. Close stops them.
func New() *Server {
	s := &Server{
		collections: map[string]*collection{},
		matrices:    map[string]*matrix{},
		pqs:         map[string]*pq{},
	}

	s.http = httptest.NewServer(s.router())

	s.listener = bufconn.Listen(bufSize)
	s.grpc = grpc.NewServer()
	matrixpb.RegisterMatrixServiceServer(s.grpc, &matrixService{srv: s})
	go func() {
		_ = s.grpc.Serve(s.listener)
	}()

	return s
}

// Close stops both transports.
func (s *Server) Close() {
	s.grpc.Stop()
	s.http.Close()
}

// URL is the base URL of the HTTP API.
func (s *Server) URL() string {
	return s.http.URL
}

// GRPCAddress is the target to pass to the client together with DialOptions.
func (s *Server) GRPCAddress() string {
	return "passthrough:///bufnet"
}

// DialOptions route gRPC connections to the in-process listener.
func (s *Server) DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}),
	}
}

// SearchJSON makes search respond with a JSON array instead of the binary layout.
func (s *Server) SearchJSON(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchJSON = enabled
}

// BatchItemResults makes batch updates report per-item results and apply
// the items that succeed. When disabled, a batch with any bad item is
// rejected as a whole.
func (s *Server) BatchItemResults(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchItemResults = enabled
}

// FailUploadAfter aborts uploads with RESOURCE_EXHAUSTED after n data
// frames. Zero disables the failure.
func (s *Server) FailUploadAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadFailAfter = n
}

// SetMutable flips the mutable flag of a collection. Writes to an immutable
// collection are refused with 405.
func (s *Server) SetMutable(name string, mutable bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if ok {
		c.mutable = mutable
	}
	return ok
}

// Vector returns a stored vector.
func (s *Server) Vector(collection string, id uint32) ([]float32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collection]
	if !ok {
		return nil, false
	}
	v, ok := c.vectors[id]
	return v, ok
}

// Matrix returns the stored values of a matrix.
func (s *Server) Matrix(name string) ([]float32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matrices[name]
	if !ok {
		return nil, false
	}
	return append([]float32(nil), m.values...), true
}

// Requests returns the HTTP requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Uploads returns the matrix uploads received so far, including failed ones.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}
