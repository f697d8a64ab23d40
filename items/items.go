package items

import (
	"context"
	"net/http"

	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/logging"
	"github.com/mengeric/fabric-client-go/resolver"
)

// Client 工作区条目的通用操作（创建/列举/删除）。
// 说明：Notebook、DataPipeline 等 Facade 均委托本组件完成条目级别的操作。
type Client struct {
	api client.API
	res resolver.Resolver
}

// New 构造条目操作客户端。
func New(api client.API, res resolver.Resolver) *Client {
	return &Client{api: api, res: res}
}

// Item 工作区内的一个条目。
type Item struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CreateRequest 创建条目的参数。
type CreateRequest struct {
	Name        string
	Type        string // 条目类型，如 Notebook、DataPipeline
	Description string
	Workspace   string // 名称或 ID，留空使用默认工作区
	Definition  any    // 可选的定义载荷，随条目一并创建
}

type createPayload struct {
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Definition  any    `json:"definition,omitempty"`
}

// Create 在工作区内创建条目；带定义的创建是长时操作，等待其完成后返回。
func (c *Client) Create(ctx context.Context, req CreateRequest) error {
	wsName, wsID, err := c.res.Workspace(ctx, req.Workspace)
	if err != nil {
		return err
	}
	payload := createPayload{
		DisplayName: req.Name,
		Type:        req.Type,
		Description: req.Description,
		Definition:  req.Definition,
	}
	_, err = c.api.DoLRO(ctx, client.Request{
		Method:  http.MethodPost,
		Path:    "v1/workspaces/" + wsID + "/items",
		Payload: payload,
	})
	if err != nil {
		return err
	}
	logging.L().Info(ctx, "item created", "item", req.Name, "type", req.Type, "workspace", wsName)
	return nil
}

// List 列举工作区内的条目，itemType 非空时按类型过滤；分页全部拉取。
func (c *Client) List(ctx context.Context, workspace, itemType string) ([]Item, error) {
	_, wsID, err := c.res.Workspace(ctx, workspace)
	if err != nil {
		return nil, err
	}
	path := "v1/workspaces/" + wsID + "/items"
	if itemType != "" {
		path += "?type=" + itemType
	}
	pages, err := c.api.DoPaged(ctx, client.Request{Path: path})
	if err != nil {
		return nil, err
	}
	var out []Item
	for _, p := range pages {
		var page struct {
			Value []Item `json:"value"`
		}
		if err := p.JSON(&page); err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

// Delete 删除工作区内的条目。
func (c *Client) Delete(ctx context.Context, item, itemType, workspace string) error {
	wsName, wsID, err := c.res.Workspace(ctx, workspace)
	if err != nil {
		return err
	}
	itemName, itemID, err := c.res.Item(ctx, item, itemType, wsID)
	if err != nil {
		return err
	}
	_, err = c.api.Do(ctx, client.Request{
		Method: http.MethodDelete,
		Path:   "v1/workspaces/" + wsID + "/items/" + itemID,
	})
	if err != nil {
		return err
	}
	logging.L().Info(ctx, "item deleted", "item", itemName, "type", itemType, "workspace", wsName)
	return nil
}
