package notebooks

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/items"
	"github.com/mengeric/fabric-client-go/logging"
	"github.com/mengeric/fabric-client-go/resolver"
)

// contentPrefix 标记笔记本主体内容分片的路径前缀，后缀记录源格式（py/ipynb）。
const contentPrefix = "notebook-content."

// ErrDefinitionNotFound 定义中不存在主体内容分片时返回。
var ErrDefinitionNotFound = errors.New("notebook definition part not found")

// Client 笔记本 Facade：定义的读取/创建/更新与从网络导入。
type Client struct {
	api   client.API
	res   resolver.Resolver
	items *items.Client
	web   *http.Client // 抓取网络托管内容用的普通 HTTP 客户端
}

// New 构造笔记本客户端；web 传 nil 时使用内置默认客户端。
func New(api client.API, res resolver.Resolver, it *items.Client, web *http.Client) *Client {
	if web == nil {
		web = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{api: api, res: res, items: it, web: web}
}

// definitionPart 定义中的一个内容分片。
type definitionPart struct {
	Path        string `json:"path"`
	Payload     string `json:"payload"`
	PayloadType string `json:"payloadType"`
}

// definition 完整的定义载荷；Format 仅在 ipynb 时打标。
type definition struct {
	Format string           `json:"format,omitempty"`
	Parts  []definitionPart `json:"parts"`
}

// getParts 拉取笔记本定义的分片列表（长时操作，等待完成）。
func (c *Client) getParts(ctx context.Context, name, workspace, format string) ([]definitionPart, error) {
	_, wsID, err := c.res.Workspace(ctx, workspace)
	if err != nil {
		return nil, err
	}
	itemID, err := c.res.ItemID(ctx, name, "Notebook", wsID)
	if err != nil {
		return nil, err
	}
	p := fmt.Sprintf("v1/workspaces/%s/notebooks/%s/getDefinition", wsID, itemID)
	if format == "ipynb" {
		p += "?format=ipynb"
	}
	resp, err := c.api.DoLRO(ctx, client.Request{Method: http.MethodPost, Path: p})
	if err != nil {
		return nil, err
	}
	var env struct {
		Definition definition `json:"definition"`
	}
	if err := resp.JSON(&env); err != nil {
		return nil, err
	}
	return env.Definition.Parts, nil
}

// contentPart 在分片中定位笔记本主体内容。
func contentPart(parts []definitionPart) (definitionPart, error) {
	for _, p := range parts {
		if strings.HasPrefix(p.Path, contentPrefix) {
			return p, nil
		}
	}
	return definitionPart{}, fmt.Errorf("no part with prefix %q: %w", contentPrefix, ErrDefinitionNotFound)
}

// GetDefinition 获取笔记本定义的主体内容。
// decode 为真时返回解码后的文本，否则返回原始 base64 载荷；
// format 传 "ipynb" 时请求平台的标准交换格式，否则为 GIT 友好的源码格式。
func (c *Client) GetDefinition(ctx context.Context, name, workspace string, decode bool, format string) (string, error) {
	parts, err := c.getParts(ctx, name, workspace, format)
	if err != nil {
		return "", err
	}
	part, err := contentPart(parts)
	if err != nil {
		return "", err
	}
	if !decode {
		return part.Payload, nil
	}
	b, err := base64.StdEncoding.DecodeString(part.Payload)
	if err != nil {
		return "", fmt.Errorf("decode payload of %s: %w", part.Path, err)
	}
	return string(b), nil
}

// notebookFormat 反查既有笔记本的源格式（内容分片路径的扩展名，如 py、ipynb）。
func (c *Client) notebookFormat(ctx context.Context, name, workspace string) (string, error) {
	parts, err := c.getParts(ctx, name, workspace, "")
	if err != nil {
		return "", err
	}
	part, err := contentPart(parts)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(path.Ext(part.Path), "."), nil
}

// CreateRequest 创建笔记本的参数。
type CreateRequest struct {
	Name        string
	Content     []byte // 笔记本内容（非 base64）
	Type        string // 源格式，留空默认 "py"
	Description string
	Workspace   string
	Format      string // 传 "ipynb" 时 Content 应为标准 ipynb，否则为 GIT 友好格式
}

// Create 以单内容分片创建笔记本，条目创建委托给 items 组件。
func (c *Client) Create(ctx context.Context, req CreateRequest) error {
	if req.Type == "" {
		req.Type = "py"
	}
	def := definition{
		Parts: []definitionPart{{
			Path:        contentPrefix + req.Type,
			Payload:     base64.StdEncoding.EncodeToString(req.Content),
			PayloadType: "InlineBase64",
		}},
	}
	if req.Format == "ipynb" {
		def.Format = "ipynb"
	}
	return c.items.Create(ctx, items.CreateRequest{
		Name:        req.Name,
		Type:        "Notebook",
		Description: req.Description,
		Workspace:   req.Workspace,
		Definition:  def,
	})
}

// UpdateDefinition 以整体替换方式更新既有笔记本的定义（长时操作，等待完成）。
// 内容分片的扩展名沿用远端现存定义，调用方无需重述笔记本类型。
func (c *Client) UpdateDefinition(ctx context.Context, name string, content []byte, workspace, format string) error {
	wsName, wsID, err := c.res.Workspace(ctx, workspace)
	if err != nil {
		return err
	}
	itemID, err := c.res.ItemID(ctx, name, "Notebook", wsID)
	if err != nil {
		return err
	}
	ext, err := c.notebookFormat(ctx, name, workspace)
	if err != nil {
		return err
	}
	def := definition{
		Parts: []definitionPart{{
			Path:        contentPrefix + ext,
			Payload:     base64.StdEncoding.EncodeToString(content),
			PayloadType: "InlineBase64",
		}},
	}
	if format == "ipynb" {
		def.Format = "ipynb"
	}
	payload := struct {
		Definition definition `json:"definition"`
	}{Definition: def}
	_, err = c.api.DoLRO(ctx, client.Request{
		Method:  http.MethodPost,
		Path:    fmt.Sprintf("v1/workspaces/%s/notebooks/%s/updateDefinition", wsID, itemID),
		Payload: payload,
	})
	if err != nil {
		return err
	}
	logging.L().Info(ctx, "notebook definition updated", "notebook", name, "workspace", wsName)
	return nil
}
