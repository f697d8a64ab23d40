package fabric

import (
	"net/http"

	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/config"
	"github.com/mengeric/fabric-client-go/logging"
	"github.com/mengeric/fabric-client-go/resolver"
)

// settings New 的装配参数。
type settings struct {
	cfg config.Config
	api client.API
	res resolver.Resolver
	web *http.Client
}

// Option 客户端装配可选项。
type Option func(*settings)

// WithConfig 注入配置（传输层地址、令牌、默认工作区等）。
func WithConfig(cfg config.Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithAPI 注入自定义传输层实现（测试打桩或替换认证方式）。
func WithAPI(api client.API) Option {
	return func(s *settings) { s.api = api }
}

// WithResolver 注入自定义名称解析实现。
func WithResolver(res resolver.Resolver) Option {
	return func(s *settings) { s.res = res }
}

// WithWebClient 注入抓取网络托管内容用的 HTTP 客户端。
func WithWebClient(hc *http.Client) Option {
	return func(s *settings) { s.web = hc }
}

// WithLogger 替换全局日志器。
func WithLogger(l logging.Logger) Option {
	return func(s *settings) { logging.SetGlobal(l) }
}
