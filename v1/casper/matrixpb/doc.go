// Package matrixpb holds the generated protobuf and gRPC code of the matrix
// upload stream (matrix_service.proto). The client uses
// MatrixServiceClient.UploadMatrix; the in-memory test server implements
// MatrixServiceServer.
package matrixpb

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative matrix_service.proto
