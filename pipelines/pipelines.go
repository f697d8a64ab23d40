package pipelines

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/items"
	"github.com/mengeric/fabric-client-go/resolver"
	"github.com/mengeric/fabric-client-go/table"
)

// contentPath 数据管道定义的主体内容分片路径。
const contentPath = "pipeline-content.json"

// ErrDefinitionNotFound 定义中不存在主体内容分片时返回。
var ErrDefinitionNotFound = errors.New("pipeline definition part not found")

// Client 数据管道 Facade：列举/创建/删除与定义读取。
type Client struct {
	api   client.API
	res   resolver.Resolver
	items *items.Client
}

// New 构造数据管道客户端。
func New(api client.API, res resolver.Resolver, it *items.Client) *Client {
	return &Client{api: api, res: res, items: it}
}

// listSchema 数据管道表的列集合。
func listSchema() table.Schema {
	return table.Schema{
		{Name: "Data Pipeline Name", Kind: table.KindString},
		{Name: "Data Pipeline ID", Kind: table.KindString},
		{Name: "Description", Kind: table.KindString},
	}
}

// List 列举工作区内的数据管道（分页全部拉取）。
func (c *Client) List(ctx context.Context, workspace string) (*table.Table, error) {
	_, wsID, err := c.res.Workspace(ctx, workspace)
	if err != nil {
		return nil, err
	}
	pages, err := c.api.DoPaged(ctx, client.Request{Path: "v1/workspaces/" + wsID + "/dataPipelines"})
	if err != nil {
		return nil, err
	}
	t := table.New(listSchema())
	for _, p := range pages {
		var page struct {
			Value []struct {
				ID          string `json:"id"`
				DisplayName string `json:"displayName"`
				Description string `json:"description"`
			} `json:"value"`
		}
		if err := p.JSON(&page); err != nil {
			return nil, err
		}
		for _, v := range page.Value {
			t.Append(map[string]any{
				"Data Pipeline Name": v.DisplayName,
				"Data Pipeline ID":   v.ID,
				"Description":        v.Description,
			})
		}
	}
	return t, nil
}

// Create 创建数据管道。
func (c *Client) Create(ctx context.Context, name, description, workspace string) error {
	return c.items.Create(ctx, items.CreateRequest{
		Name:        name,
		Type:        "DataPipeline",
		Description: description,
		Workspace:   workspace,
	})
}

// Delete 删除数据管道。
func (c *Client) Delete(ctx context.Context, name, workspace string) error {
	return c.items.Delete(ctx, name, "DataPipeline", workspace)
}

// GetDefinition 获取数据管道定义的主体内容（长时操作，等待完成）。
// decode 为真时返回解码后的 JSON 文本，否则返回原始 base64 载荷。
func (c *Client) GetDefinition(ctx context.Context, name, workspace string, decode bool) (string, error) {
	_, wsID, err := c.res.Workspace(ctx, workspace)
	if err != nil {
		return "", err
	}
	itemID, err := c.res.ItemID(ctx, name, "DataPipeline", wsID)
	if err != nil {
		return "", err
	}
	resp, err := c.api.DoLRO(ctx, client.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("v1/workspaces/%s/dataPipelines/%s/getDefinition", wsID, itemID),
	})
	if err != nil {
		return "", err
	}
	var env struct {
		Definition struct {
			Parts []struct {
				Path    string `json:"path"`
				Payload string `json:"payload"`
			} `json:"parts"`
		} `json:"definition"`
	}
	if err := resp.JSON(&env); err != nil {
		return "", err
	}
	for _, p := range env.Definition.Parts {
		if p.Path != contentPath {
			continue
		}
		if !decode {
			return p.Payload, nil
		}
		b, err := base64.StdEncoding.DecodeString(p.Payload)
		if err != nil {
			return "", fmt.Errorf("decode payload of %s: %w", p.Path, err)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("no part %q: %w", contentPath, ErrDefinitionNotFound)
}
