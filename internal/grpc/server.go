// Package grpc содержит gRPC сервер дашборда и его интерцепторы.
package grpc

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/tempizhere/shortdash/internal/app"
	"github.com/tempizhere/shortdash/internal/client"
	"github.com/tempizhere/shortdash/internal/grpc/proto"
	"github.com/tempizhere/shortdash/internal/models"
	"github.com/tempizhere/shortdash/internal/repository"
	"github.com/tempizhere/shortdash/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server реализует gRPC сервис дашборда
type Server struct {
	proto.UnimplementedDashboardServiceServer
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

// NewGRPCServer создаёт grpc.Server с JSON-кодеком, интерцепторами и зарегистрированным сервисом
func NewGRPCServer(svc *service.Service, trustedSubnet string, logger *zap.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.ForceServerCodec(proto.JSONCodec{}),
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(logger),
			TrustedSubnetInterceptor(trustedSubnet, logger),
			AuthInterceptor(svc, logger),
		),
	)
	proto.RegisterDashboardServiceServer(s, NewServer(svc, logger))
	return s
}

// ListLinks возвращает представление списка ссылок
func (s *Server) ListLinks(ctx context.Context, req *proto.ListLinksRequest) (*proto.ListLinksResponse, error) {
	session, err := getSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	q, err := app.ParseViewQuery(queryValues(req))
	if err != nil {
		return nil, s.mapError(err)
	}
	res, err := s.svc.View(ctx, session, q)
	if err != nil {
		return nil, s.mapError(err)
	}

	now := s.svc.Now()
	links := make([]*proto.Link, len(res.Links))
	for i, l := range res.Links {
		links[i] = toProtoLink(l, now)
	}
	return &proto.ListLinksResponse{
		Links: links,
		Total: int32(res.Total),
		Stale: res.Stale,
	}, nil
}

// ExportLinks возвращает CSV-выгрузку представления
func (s *Server) ExportLinks(ctx context.Context, req *proto.ListLinksRequest) (*proto.ExportLinksResponse, error) {
	session, err := getSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	q, err := app.ParseViewQuery(queryValues(req))
	if err != nil {
		return nil, s.mapError(err)
	}
	var buf bytes.Buffer
	filename, err := s.svc.Export(ctx, session, q, &buf)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &proto.ExportLinksResponse{Filename: filename, Content: buf.Bytes()}, nil
}

// GetStats возвращает число открытых сессий
func (s *Server) GetStats(ctx context.Context, _ *proto.GetStatsRequest) (*proto.GetStatsResponse, error) {
	count, err := s.svc.SessionCount(ctx)
	if err != nil {
		s.logger.Error("Failed to get stats", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to get statistics")
	}
	return &proto.GetStatsResponse{Sessions: int32(count)}, nil
}

// ListTags возвращает теги коллекции
func (s *Server) ListTags(ctx context.Context, _ *proto.ListTagsRequest) (*proto.ListTagsResponse, error) {
	session, err := getSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.svc.Tags(ctx, session)
	if err != nil {
		return nil, s.mapError(err)
	}
	resp := &proto.ListTagsResponse{Tags: make([]*proto.TagCount, len(tags))}
	for i, tag := range tags {
		resp.Tags[i] = &proto.TagCount{Name: tag.Name, URLCount: int32(tag.URLCount)}
	}
	return resp, nil
}

// GetSettings возвращает настройки оформления
func (s *Server) GetSettings(ctx context.Context, _ *proto.GetSettingsRequest) (*proto.GetSettingsResponse, error) {
	session, err := getSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.svc.Settings(ctx, session.User.ID)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &proto.GetSettingsResponse{
		Theme:          string(settings.Theme),
		ColorScheme:    string(settings.ColorScheme),
		FontSize:       string(settings.FontSize),
		ReducedMotion:  settings.ReducedMotion,
		RoundedCorners: settings.RoundedCorners,
		CSSVariables:   settings.CSSVariables(),
	}, nil
}

// queryValues переводит запрос в параметры представления HTTP API
func queryValues(req *proto.ListLinksRequest) url.Values {
	values := url.Values{}
	set := func(name, v string) {
		if v != "" {
			values.Set(name, v)
		}
	}
	set("q", req.Search)
	set("start", req.Start)
	set("end", req.End)
	set("sort", req.Sort)
	set("order", req.Order)
	for _, tag := range req.Tags {
		values.Add("tag", tag)
	}
	if req.ShowExpired != nil {
		values.Set("showExpired", strconv.FormatBool(*req.ShowExpired))
	}
	if req.ShowPrivate != nil {
		values.Set("showPrivate", strconv.FormatBool(*req.ShowPrivate))
	}
	return values
}

func toProtoLink(l models.LinkRecord, now time.Time) *proto.Link {
	link := &proto.Link{
		ID:          l.ID,
		OriginalURL: l.OriginalURL,
		ShortURL:    l.ShortURL,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		IsPrivate:   l.IsPrivate,
		HasPassword: l.Password != "",
		IsExpired:   l.IsExpired(now),
		Tags:        l.Tags,
		Clicks:      l.Clicks,
	}
	if l.ExpiresAt != nil {
		link.ExpiresAt = l.ExpiresAt.Format(time.RFC3339)
	}
	if link.Tags == nil {
		link.Tags = []string{}
	}
	return link
}

// mapError преобразует ошибки бизнес-логики в gRPC статусы
func (s *Server) mapError(err error) error {
	var (
		apiErr *client.APIError
		valErr *models.ValidationError
	)
	switch {
	case errors.As(err, &valErr):
		return status.Error(codes.InvalidArgument, valErr.Error())
	case errors.Is(err, repository.ErrEmptyID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, client.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "upstream session expired")
	case errors.Is(err, client.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.As(err, &apiErr), errors.Is(err, client.ErrInvalidPayload):
		return status.Error(codes.Unavailable, "upstream API error")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "upstream API timeout")
	default:
		s.logger.Error("Unexpected error", zap.Error(err))
		return status.Error(codes.Internal, "internal server error")
	}
}
