package matrixpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestFileDescriptor(t *testing.T) {
	svc := File_matrix_service_proto.Services().ByName("MatrixService")
	require.NotNil(t, svc)
	method := svc.Methods().ByName("UploadMatrix")
	require.NotNil(t, method)
	assert.True(t, method.IsStreamingClient())
	assert.False(t, method.IsStreamingServer())
	assert.Equal(t, MatrixService_ServiceDesc.ServiceName, string(svc.FullName()))
	assert.Equal(t, "/"+MatrixService_ServiceDesc.ServiceName+"/UploadMatrix", MatrixService_UploadMatrix_FullMethodName)

	header := File_matrix_service_proto.Messages().ByName("MatrixHeader")
	require.NotNil(t, header)
	assert.Equal(t, "maxVectorsPerChunk", header.Fields().ByName("max_vectors_per_chunk").JSONName())
}

func TestHeaderFrameWireRoundTrip(t *testing.T) {
	in := &UploadMatrixRequest{Payload: &UploadMatrixRequest_Header{Header: &MatrixHeader{
		Name: "embeddings", Dimension: 3, TotalChunks: 4, MaxVectorsPerChunk: 2,
	}}}

	raw, err := proto.Marshal(in)
	require.NoError(t, err)

	out := &UploadMatrixRequest{}
	require.NoError(t, proto.Unmarshal(raw, out))

	require.NotNil(t, out.GetHeader())
	assert.Nil(t, out.GetData())
	assert.True(t, proto.Equal(in, out))
	assert.Equal(t, uint32(2), out.GetHeader().GetMaxVectorsPerChunk())
}

func TestDataFrameWireRoundTrip(t *testing.T) {
	in := &UploadMatrixRequest{Payload: &UploadMatrixRequest_Data{Data: &MatrixData{
		ChunkIndex: 7, Vector: []float32{0.5, -1.25, 3},
	}}}

	raw, err := proto.Marshal(in)
	require.NoError(t, err)

	out := &UploadMatrixRequest{}
	require.NoError(t, proto.Unmarshal(raw, out))

	require.NotNil(t, out.GetData())
	assert.Nil(t, out.GetHeader())
	assert.Equal(t, uint32(7), out.GetData().GetChunkIndex())
	assert.Equal(t, []float32{0.5, -1.25, 3}, out.GetData().GetVector())
}

func TestEmptyRequestHasNoPayload(t *testing.T) {
	req := &UploadMatrixRequest{}
	assert.Nil(t, req.GetPayload())
	assert.Nil(t, req.GetHeader())

	var nilResp *UploadMatrixResponse
	assert.Zero(t, nilResp.GetTotalVectors())
}
