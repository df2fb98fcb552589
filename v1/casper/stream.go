package casper

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"

	"github.com/casper-db/casper-go/v1/casper/matrixpb"
)

// streamExecutor runs matrix uploads over one shared gRPC connection.
// Every upload opens its own stream.
type streamExecutor struct {
	conn   *grpc.ClientConn
	client matrixpb.MatrixServiceClient
	logger Logger
}

func newStreamExecutor(cfg *Config, logger Logger) (*streamExecutor, error) {
	maxSend := cfg.MaxSendMsgSize
	if maxSend <= 0 {
		maxSend = DefaultMaxSendMsgSize
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.MaxCallSendMsgSize(maxSend)),
		grpc.WithChainStreamInterceptor(
			logging.StreamClientInterceptor(interceptorLogger(logger),
				logging.WithLogOnEvents(logging.StartCall, logging.FinishCall)),
		),
	}
	if cfg.KeepAliveTime > 0 {
		opts = append(opts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    cfg.KeepAliveTime,
			Timeout: cfg.KeepAliveTimeout,
		}))
	}
	opts = append(opts, cfg.DialOptions...)

	conn, err := grpc.NewClient(cfg.GRPCAddress, opts...)
	if err != nil {
		return nil, fmt.Errorf("casper: create grpc client for %s: %w", cfg.GRPCAddress, err)
	}
	return &streamExecutor{conn: conn, client: matrixpb.NewMatrixServiceClient(conn), logger: logger}, nil
}

// interceptorLogger adapts Logger to the grpc middleware logging interface.
func interceptorLogger(l Logger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		f := make(map[string]interface{}, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			f[fmt.Sprint(fields[i])] = fields[i+1]
		}

		switch lvl {
		case logging.LevelDebug:
			l.Debug(msg, nil, f)
		case logging.LevelInfo:
			l.Info(msg, nil, f)
		case logging.LevelWarn:
			l.Warn(msg, nil, f)
		case logging.LevelError:
			l.Error(msg, nil, f)
		default:
			l.Info(msg, nil, f)
		}
	})
}

// upload streams req as one header frame followed by data frames in order and
// waits for the single acknowledgment. carrier, when non-empty, is sent as
// outgoing metadata.
func (e *streamExecutor) upload(ctx context.Context, req UploadMatrixRequest, chunkFloats int, carrier map[string]string) (*UploadMatrixResult, error) {
	const op = "upload_matrix"

	chunks := chunkValues(req.Values, chunkFloats)
	vectorsPerChunk := uint32(chunkFloats) / req.Dim
	if vectorsPerChunk == 0 {
		vectorsPerChunk = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for k, v := range carrier {
		ctx = metadata.AppendToOutgoingContext(ctx, k, v)
	}

	stream, err := e.client.UploadMatrix(ctx)
	if err != nil {
		return nil, translateStreamError(op, req.Name, err)
	}

	header := &matrixpb.UploadMatrixRequest{Payload: &matrixpb.UploadMatrixRequest_Header{
		Header: &matrixpb.MatrixHeader{
			Name:               req.Name,
			Dimension:          req.Dim,
			TotalChunks:        uint32(len(chunks)),
			MaxVectorsPerChunk: vectorsPerChunk,
		},
	}}
	if err := stream.Send(header); err != nil {
		return nil, sendFailure(op, req.Name, stream, err)
	}

	for i, chunk := range chunks {
		frame := &matrixpb.UploadMatrixRequest{Payload: &matrixpb.UploadMatrixRequest_Data{
			Data: &matrixpb.MatrixData{ChunkIndex: uint32(i), Vector: chunk},
		}}
		if err := stream.Send(frame); err != nil {
			return nil, sendFailure(op, req.Name, stream, err)
		}
	}

	ack, err := stream.CloseAndRecv()
	if err != nil {
		return nil, translateStreamError(op, req.Name, err)
	}

	return &UploadMatrixResult{
		Message:      ack.GetMessage(),
		TotalVectors: ack.GetTotalVectors(),
		TotalChunks:  ack.GetTotalChunks(),
		FramesSent:   len(chunks) + 1,
	}, nil
}

// sendFailure resolves a Send error. io.EOF means the server ended the
// stream; the actual status is only available from the receive side.
func sendFailure(op, matrix string, stream matrixpb.MatrixService_UploadMatrixClient, err error) error {
	if errors.Is(err, io.EOF) {
		_, rerr := stream.CloseAndRecv()
		if rerr == nil {
			rerr = errors.New("server acknowledged before all frames were sent")
		}
		return translateStreamError(op, matrix, rerr)
	}
	return translateStreamError(op, matrix, err)
}

func (e *streamExecutor) close() error {
	return e.conn.Close()
}
