package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName задаёт полное имя gRPC сервиса
const ServiceName = "dashboard.v1.DashboardService"

// Полные имена методов
const (
	ListLinksFullMethod   = "/" + ServiceName + "/ListLinks"
	ExportLinksFullMethod = "/" + ServiceName + "/ExportLinks"
	GetStatsFullMethod    = "/" + ServiceName + "/GetStats"
	ListTagsFullMethod    = "/" + ServiceName + "/ListTags"
	GetSettingsFullMethod = "/" + ServiceName + "/GetSettings"
)

// DashboardServiceServer представляет интерфейс gRPC сервиса
type DashboardServiceServer interface {
	ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error)
	ExportLinks(ctx context.Context, req *ListLinksRequest) (*ExportLinksResponse, error)
	GetStats(ctx context.Context, req *GetStatsRequest) (*GetStatsResponse, error)
	ListTags(ctx context.Context, req *ListTagsRequest) (*ListTagsResponse, error)
	GetSettings(ctx context.Context, req *GetSettingsRequest) (*GetSettingsResponse, error)
}

// UnimplementedDashboardServiceServer возвращает codes.Unimplemented для всех методов
type UnimplementedDashboardServiceServer struct{}

func (UnimplementedDashboardServiceServer) ListLinks(context.Context, *ListLinksRequest) (*ListLinksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListLinks not implemented")
}

func (UnimplementedDashboardServiceServer) ExportLinks(context.Context, *ListLinksRequest) (*ExportLinksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportLinks not implemented")
}

func (UnimplementedDashboardServiceServer) GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStats not implemented")
}

func (UnimplementedDashboardServiceServer) ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTags not implemented")
}

func (UnimplementedDashboardServiceServer) GetSettings(context.Context, *GetSettingsRequest) (*GetSettingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSettings not implemented")
}

// RegisterDashboardServiceServer регистрирует реализацию сервиса в gRPC сервере
func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardServiceDesc, srv)
}

// DashboardServiceDesc описывает сервис для grpc.Server
var DashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListLinks", Handler: _DashboardService_ListLinks_Handler},
		{MethodName: "ExportLinks", Handler: _DashboardService_ExportLinks_Handler},
		{MethodName: "GetStats", Handler: _DashboardService_GetStats_Handler},
		{MethodName: "ListTags", Handler: _DashboardService_ListTags_Handler},
		{MethodName: "GetSettings", Handler: _DashboardService_GetSettings_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dashboard.proto",
}

func _DashboardService_ListLinks_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListLinksRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).ListLinks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListLinksFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).ListLinks(ctx, req.(*ListLinksRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DashboardService_ExportLinks_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListLinksRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).ExportLinks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ExportLinksFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).ExportLinks(ctx, req.(*ListLinksRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DashboardService_GetStats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetStatsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetStatsFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).GetStats(ctx, req.(*GetStatsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DashboardService_ListTags_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListTagsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).ListTags(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListTagsFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).ListTags(ctx, req.(*ListTagsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DashboardService_GetSettings_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSettingsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).GetSettings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetSettingsFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).GetSettings(ctx, req.(*GetSettingsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// DashboardServiceClient представляет клиент gRPC сервиса
type DashboardServiceClient interface {
	ListLinks(ctx context.Context, in *ListLinksRequest, opts ...grpc.CallOption) (*ListLinksResponse, error)
	ExportLinks(ctx context.Context, in *ListLinksRequest, opts ...grpc.CallOption) (*ExportLinksResponse, error)
	GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error)
	ListTags(ctx context.Context, in *ListTagsRequest, opts ...grpc.CallOption) (*ListTagsResponse, error)
	GetSettings(ctx context.Context, in *GetSettingsRequest, opts ...grpc.CallOption) (*GetSettingsResponse, error)
}

type dashboardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDashboardServiceClient создаёт клиент поверх соединения
func NewDashboardServiceClient(cc grpc.ClientConnInterface) DashboardServiceClient {
	return &dashboardServiceClient{cc: cc}
}

// ListLinks возвращает представление списка ссылок
func (c *dashboardServiceClient) ListLinks(ctx context.Context, in *ListLinksRequest, opts ...grpc.CallOption) (*ListLinksResponse, error) {
	out := new(ListLinksResponse)
	if err := c.cc.Invoke(ctx, ListLinksFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportLinks возвращает CSV-выгрузку представления
func (c *dashboardServiceClient) ExportLinks(ctx context.Context, in *ListLinksRequest, opts ...grpc.CallOption) (*ExportLinksResponse, error) {
	out := new(ExportLinksResponse)
	if err := c.cc.Invoke(ctx, ExportLinksFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStats возвращает служебную статистику
func (c *dashboardServiceClient) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error) {
	out := new(GetStatsResponse)
	if err := c.cc.Invoke(ctx, GetStatsFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTags возвращает теги коллекции
func (c *dashboardServiceClient) ListTags(ctx context.Context, in *ListTagsRequest, opts ...grpc.CallOption) (*ListTagsResponse, error) {
	out := new(ListTagsResponse)
	if err := c.cc.Invoke(ctx, ListTagsFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSettings возвращает настройки оформления
func (c *dashboardServiceClient) GetSettings(ctx context.Context, in *GetSettingsRequest, opts ...grpc.CallOption) (*GetSettingsResponse, error) {
	out := new(GetSettingsResponse)
	if err := c.cc.Invoke(ctx, GetSettingsFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
