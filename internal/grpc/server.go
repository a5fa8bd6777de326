// Package grpc содержит реализацию gRPC сервера для сервиса коротких ссылок
package grpc

import (
	"context"
	"errors"

	"github.com/ntkrnl64/krnl-go/internal/grpc/proto"
	"github.com/ntkrnl64/krnl-go/internal/models"
	"github.com/ntkrnl64/krnl-go/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server реализует gRPC сервер для сервиса коротких ссылок
type Server struct {
	proto.UnimplementedLinkServiceServer
	svc    *service.Service
	logger *zap.Logger
}

// NewServer создаёт новый gRPC сервер
func NewServer(svc *service.Service, logger *zap.Logger) *Server {
	return &Server{
		svc:    svc,
		logger: logger,
	}
}

// ResolveLink обрабатывает разрешение короткой ссылки в целевой URL
func (s *Server) ResolveLink(ctx context.Context, req *proto.ResolveLinkRequest) (*proto.ResolveLinkResponse, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "link ID is required")
	}

	_, link, err := s.svc.Resolve(req.Id)
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			return &proto.ResolveLinkResponse{Found: false}, nil
		}
		return nil, s.mapError(err)
	}

	return &proto.ResolveLinkResponse{
		Url:   link.URL,
		Found: true,
	}, nil
}

// CreateLink обрабатывает создание короткой ссылки
func (s *Server) CreateLink(ctx context.Context, req *proto.CreateLinkRequest) (*proto.CreateLinkResponse, error) {
	if req.Url == "" {
		return nil, status.Error(codes.InvalidArgument, "URL is required")
	}

	link, err := s.svc.Create(models.LinkPayload{
		ID:          req.Id,
		URL:         req.Url,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &proto.CreateLinkResponse{
		Link:    toLinkInfo(link),
		Merged:  link.Merged,
		AliasId: link.AliasID,
	}, nil
}

// ListLinks возвращает все канонические ссылки
func (s *Server) ListLinks(ctx context.Context, req *proto.ListLinksRequest) (*proto.ListLinksResponse, error) {
	links, err := s.svc.List()
	if err != nil {
		return nil, s.mapError(err)
	}

	protoLinks := make([]*proto.LinkInfo, len(links))
	for i := range links {
		protoLinks[i] = toLinkInfo(&links[i])
	}

	return &proto.ListLinksResponse{Links: protoLinks}, nil
}

// DeleteLink удаляет короткую ссылку или алиас
func (s *Server) DeleteLink(ctx context.Context, req *proto.DeleteLinkRequest) (*proto.DeleteLinkResponse, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "link ID is required")
	}

	if err := s.svc.Delete(req.Id); err != nil {
		return nil, s.mapError(err)
	}

	return &proto.DeleteLinkResponse{Success: true}, nil
}

// MergeLinks объединяет ссылки с одинаковым URL.
// Пустой список идентификаторов означает объединение по всему хранилищу.
func (s *Server) MergeLinks(ctx context.Context, req *proto.MergeLinksRequest) (*proto.MergeLinksResponse, error) {
	merged, err := s.svc.Merge(req.Ids)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &proto.MergeLinksResponse{Merged: int32(merged)}, nil
}

// GetStats возвращает статистику сервиса
func (s *Server) GetStats(ctx context.Context, req *proto.GetStatsRequest) (*proto.GetStatsResponse, error) {
	links, aliases, err := s.svc.Stats()
	if err != nil {
		s.logger.Error("Failed to get stats", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to get statistics")
	}

	return &proto.GetStatsResponse{
		LinksCount:   int32(links),
		AliasesCount: int32(aliases),
	}, nil
}

// toLinkInfo преобразует ответ бизнес-логики в gRPC тип
func toLinkInfo(link *models.LinkResponse) *proto.LinkInfo {
	info := &proto.LinkInfo{
		Id:          link.ID,
		Url:         link.URL,
		CreatedAt:   link.CreatedAt,
		Title:       link.Title,
		Description: link.Description,
		Aliases:     link.Aliases,
	}
	if link.RedirectDelay != nil {
		info.RedirectDelay = int32(*link.RedirectDelay)
	}
	return info
}

// mapError преобразует ошибки бизнес-логики в gRPC статусы
func (s *Server) mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, service.ErrLinkNotFound):
		return status.Error(codes.NotFound, "link not found")
	case errors.Is(err, service.ErrIDExists):
		return status.Error(codes.AlreadyExists, "ID already exists")
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrAliasTarget):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("Unexpected error", zap.Error(err))
		return status.Error(codes.Internal, "internal server error")
	}
}
