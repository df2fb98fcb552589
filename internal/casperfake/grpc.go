package casperfake

import (
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/casper-db/casper-go/v1/casper/matrixpb"
)

type uploadStream = grpc.ClientStreamingServer[matrixpb.UploadMatrixRequest, matrixpb.UploadMatrixResponse]

// matrixService serves MatrixService/UploadMatrix against the fake's state.
type matrixService struct {
	matrixpb.UnimplementedMatrixServiceServer
	srv *Server
}

func (m *matrixService) UploadMatrix(stream uploadStream) error {
	s := m.srv

	first, err := stream.Recv()
	if err != nil {
		return err
	}
	h := first.GetHeader()
	if h == nil {
		return status.Error(codes.InvalidArgument, "first frame must be a header")
	}

	upload := Upload{Name: h.GetName(), Dimension: h.GetDimension(), TotalChunks: h.GetTotalChunks()}
	if md, ok := metadata.FromIncomingContext(stream.Context()); ok {
		upload.Metadata = md.Copy()
	}

	s.mu.Lock()
	failAfter := s.uploadFailAfter
	s.mu.Unlock()

	err = s.receiveFrames(stream, h, &upload, failAfter)

	s.mu.Lock()
	s.uploads = append(s.uploads, upload)
	s.mu.Unlock()

	return err
}

func (s *Server) receiveFrames(stream uploadStream, h *matrixpb.MatrixHeader, upload *Upload, failAfter int) error {
	if h.GetName() == "" || h.GetDimension() == 0 {
		return status.Error(codes.InvalidArgument, "header requires a name and a positive dimension")
	}

	var values []float32
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		data := msg.GetData()
		if data == nil {
			return status.Error(codes.InvalidArgument, "expected a data frame")
		}
		if int(data.GetChunkIndex()) != len(upload.Frames) {
			return status.Errorf(codes.InvalidArgument, "chunk %d arrived out of order, expected %d", data.GetChunkIndex(), len(upload.Frames))
		}

		upload.Frames = append(upload.Frames, data.GetVector())
		values = append(values, data.GetVector()...)

		if failAfter > 0 && len(upload.Frames) >= failAfter {
			return status.Errorf(codes.ResourceExhausted, "matrix %s rejected after %d chunks", h.GetName(), len(upload.Frames))
		}
	}

	if uint32(len(upload.Frames)) != h.GetTotalChunks() {
		return status.Errorf(codes.InvalidArgument, "received %d chunks, header announced %d", len(upload.Frames), h.GetTotalChunks())
	}
	dim := int(h.GetDimension())
	if len(values)%dim != 0 {
		return status.Errorf(codes.InvalidArgument, "%d values do not form rows of dimension %d", len(values), dim)
	}

	s.mu.Lock()
	s.matrices[h.GetName()] = &matrix{name: h.GetName(), dim: h.GetDimension(), values: values}
	s.mu.Unlock()

	return stream.SendAndClose(&matrixpb.UploadMatrixResponse{
		Message:      fmt.Sprintf("matrix %s uploaded", h.GetName()),
		TotalVectors: uint32(len(values) / dim),
		TotalChunks:  uint32(len(upload.Frames)),
	})
}
