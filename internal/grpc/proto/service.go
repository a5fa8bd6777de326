// Package proto содержит интерфейс gRPC сервиса коротких ссылок
package proto

import (
	"context"

	"google.golang.org/grpc"
)

// LinkServiceServer представляет интерфейс gRPC сервиса
type LinkServiceServer interface {
	ResolveLink(ctx context.Context, req *ResolveLinkRequest) (*ResolveLinkResponse, error)
	CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error)
	ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error)
	DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error)
	MergeLinks(ctx context.Context, req *MergeLinksRequest) (*MergeLinksResponse, error)
	GetStats(ctx context.Context, req *GetStatsRequest) (*GetStatsResponse, error)
}

// UnimplementedLinkServiceServer предоставляет базовую реализацию интерфейса
type UnimplementedLinkServiceServer struct{}

// ResolveLink предоставляет базовую реализацию разрешения короткой ссылки
func (UnimplementedLinkServiceServer) ResolveLink(ctx context.Context, req *ResolveLinkRequest) (*ResolveLinkResponse, error) {
	return nil, nil
}

// CreateLink предоставляет базовую реализацию создания короткой ссылки
func (UnimplementedLinkServiceServer) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	return nil, nil
}

// ListLinks предоставляет базовую реализацию получения списка ссылок
func (UnimplementedLinkServiceServer) ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error) {
	return nil, nil
}

// DeleteLink предоставляет базовую реализацию удаления ссылки
func (UnimplementedLinkServiceServer) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error) {
	return nil, nil
}

// MergeLinks предоставляет базовую реализацию объединения дубликатов
func (UnimplementedLinkServiceServer) MergeLinks(ctx context.Context, req *MergeLinksRequest) (*MergeLinksResponse, error) {
	return nil, nil
}

// GetStats предоставляет базовую реализацию получения статистики сервиса
func (UnimplementedLinkServiceServer) GetStats(ctx context.Context, req *GetStatsRequest) (*GetStatsResponse, error) {
	return nil, nil
}

// RegisterLinkServiceServer регистрирует реализацию сервиса в gRPC сервере
func RegisterLinkServiceServer(s *grpc.Server, srv LinkServiceServer) {
	// В реальном проекте это было бы автоматически сгенерировано protoc
	// Здесь заглушка для демонстрации
}
