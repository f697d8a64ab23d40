package fabric

import (
	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/items"
	"github.com/mengeric/fabric-client-go/jobs"
	"github.com/mengeric/fabric-client-go/notebooks"
	"github.com/mengeric/fabric-client-go/pipelines"
	"github.com/mengeric/fabric-client-go/resolver"
)

// Client 平台客户端主对象：聚合作业、笔记本、条目与数据管道 Facade。
// 说明：各 Facade 共享同一个传输层与解析器，调用之间不保有任何可变状态。
type Client struct {
	api client.API
	res resolver.Resolver

	jobs      *jobs.Client
	notebooks *notebooks.Client
	items     *items.Client
	pipelines *pipelines.Client
}

// New 创建客户端。
// 功能：按照 With... 可选项组合出可用的客户端；未显式注入传输层/解析器时，
// 依据配置构造默认的 HTTP 实现。
func New(opts ...Option) *Client {
	s := &settings{}
	for _, fn := range opts {
		fn(s)
	}
	api := s.api
	if api == nil {
		api = client.NewHTTP(client.OptionsFromConfig(s.cfg))
	}
	res := s.res
	if res == nil {
		res = resolver.NewHTTP(api, s.cfg.DefaultWorkspace)
	}
	it := items.New(api, res)
	return &Client{
		api:       api,
		res:       res,
		jobs:      jobs.New(api, res),
		notebooks: notebooks.New(api, res, it, s.web),
		items:     it,
		pipelines: pipelines.New(api, res, it),
	}
}

// Jobs 作业 Facade。
func (c *Client) Jobs() *jobs.Client { return c.jobs }

// Notebooks 笔记本 Facade。
func (c *Client) Notebooks() *notebooks.Client { return c.notebooks }

// Items 条目通用操作。
func (c *Client) Items() *items.Client { return c.items }

// Pipelines 数据管道 Facade。
func (c *Client) Pipelines() *pipelines.Client { return c.pipelines }
