package grpc

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tempizhere/shortdash/internal/grpc/proto"
	"github.com/tempizhere/shortdash/internal/log"
	"github.com/tempizhere/shortdash/internal/middleware"
	"github.com/tempizhere/shortdash/internal/models"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// sessionKey для хранения сессии в контексте
type sessionKey struct{}

// internalMethods доступны только из доверенной подсети и без сессии
var internalMethods = map[string]bool{
	proto.GetStatsFullMethod: true,
}

// AuthInterceptor требует JWT сессии в метаданных authorization: Bearer
func AuthInterceptor(resolver middleware.SessionResolver, logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if internalMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		var token string
		if values := md.Get("authorization"); len(values) > 0 && strings.HasPrefix(values[0], "Bearer ") {
			token = strings.TrimPrefix(values[0], "Bearer ")
		}
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		sessionID, err := resolver.ParseJWT(token)
		if err != nil {
			logger.Warn("Invalid JWT token", zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		session, err := resolver.Session(ctx, sessionID)
		if err != nil {
			logger.Warn("Session is not available", zap.String("session_id", sessionID), zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, "session not found")
		}

		return handler(context.WithValue(ctx, sessionKey{}, session), req)
	}
}

// TrustedSubnetInterceptor пропускает служебные методы только из доверенной подсети.
// Адрес клиента берётся из метаданных x-real-ip, иначе из адреса соединения.
func TrustedSubnetInterceptor(trustedSubnet string, logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if !internalMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		clientIP := clientIPFromContext(ctx)
		ok, err := middleware.IPInSubnet(trustedSubnet, clientIP)
		switch {
		case errors.Is(err, middleware.ErrSubnetNotConfigured):
			return nil, status.Error(codes.PermissionDenied, "trusted subnet not configured")
		case err != nil:
			logger.Error("Invalid trusted subnet", zap.String("subnet", trustedSubnet), zap.Error(err))
			return nil, status.Error(codes.Internal, "invalid trusted subnet configuration")
		case !ok:
			logger.Warn("Access denied from untrusted IP", zap.String("ip", clientIP))
			return nil, status.Error(codes.PermissionDenied, "access denied")
		}
		return handler(ctx, req)
	}
}

// LoggingInterceptor создаёт интерцептор для логирования gRPC запросов.
// Идентификатор запроса берётся из метаданных x-request-id или генерируется.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		requestID := uuid.New().String()
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("x-request-id"); len(values) > 0 && values[0] != "" {
				requestID = values[0]
			}
		}
		ctx = log.WithRequestID(ctx, requestID)

		resp, err := handler(ctx, req)

		logger.Info("gRPC request",
			zap.String("request_id", requestID),
			zap.String("method", info.FullMethod),
			zap.String("client_ip", clientIPFromContext(ctx)),
			zap.String("status_code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return resp, err
	}
}

func clientIPFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("x-real-ip"); len(values) > 0 {
			return values[0]
		}
	}
	if p, ok := peer.FromContext(ctx); ok {
		if tcpAddr, ok := p.Addr.(*net.TCPAddr); ok {
			return tcpAddr.IP.String()
		}
		return p.Addr.String()
	}
	return ""
}

// getSessionFromContext извлекает сессию из контекста
func getSessionFromContext(ctx context.Context) (models.Session, error) {
	if session, ok := ctx.Value(sessionKey{}).(models.Session); ok {
		return session, nil
	}
	return models.Session{}, status.Error(codes.Unauthenticated, "user not authenticated")
}
