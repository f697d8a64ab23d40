package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mengeric/fabric-client-go/client"
)

// ErrNotFound 名称或 ID 无法解析时返回，可用 errors.Is 判断。
var ErrNotFound = errors.New("not found")

// Resolver 名称/ID 解析接口，便于 gomock 打桩。
// 功能：把人类可读的工作区/条目名称解析为平台的不透明 ID；
// 每次调用都实时查询远端，不做任何缓存。
type Resolver interface {
	// Workspace 解析工作区名称或 ID；ref 留空时使用默认工作区。
	Workspace(ctx context.Context, ref string) (name, id string, err error)
	// Item 解析条目名称或 ID；按名称寻址时 itemType 用于过滤。
	Item(ctx context.Context, ref, itemType, workspaceID string) (name, id string, err error)
	// ItemType 按 ID 查询条目类型。
	ItemType(ctx context.Context, itemID, workspaceID string) (string, error)
	// ItemID 仅返回条目 ID。
	ItemID(ctx context.Context, ref, itemType, workspaceID string) (string, error)
}

// httpResolver 基于条目目录接口的实现。
type httpResolver struct {
	api              client.API
	defaultWorkspace string
}

// NewHTTP 构造 HTTP 实现；defaultWorkspace 可为空。
func NewHTTP(api client.API, defaultWorkspace string) Resolver {
	return &httpResolver{api: api, defaultWorkspace: defaultWorkspace}
}

type workspaceInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type itemInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
}

// Workspace 实现 Resolver.Workspace。
func (r *httpResolver) Workspace(ctx context.Context, ref string) (string, string, error) {
	if ref == "" {
		ref = r.defaultWorkspace
	}
	if ref == "" {
		return "", "", fmt.Errorf("workspace: no workspace given and no default configured: %w", ErrNotFound)
	}
	if isUUID(ref) {
		resp, err := r.api.Do(ctx, client.Request{Path: "v1/workspaces/" + ref})
		if err != nil {
			return "", "", err
		}
		var w workspaceInfo
		if err := resp.JSON(&w); err != nil {
			return "", "", err
		}
		return w.DisplayName, w.ID, nil
	}
	pages, err := r.api.DoPaged(ctx, client.Request{Path: "v1/workspaces"})
	if err != nil {
		return "", "", err
	}
	for _, p := range pages {
		var page struct {
			Value []workspaceInfo `json:"value"`
		}
		if err := p.JSON(&page); err != nil {
			return "", "", err
		}
		for _, w := range page.Value {
			if w.DisplayName == ref {
				return w.DisplayName, w.ID, nil
			}
		}
	}
	return "", "", fmt.Errorf("workspace %q: %w", ref, ErrNotFound)
}

// Item 实现 Resolver.Item。
func (r *httpResolver) Item(ctx context.Context, ref, itemType, workspaceID string) (string, string, error) {
	if isUUID(ref) {
		it, err := r.getItem(ctx, ref, workspaceID)
		if err != nil {
			return "", "", err
		}
		return it.DisplayName, it.ID, nil
	}
	path := "v1/workspaces/" + workspaceID + "/items"
	if itemType != "" {
		path += "?type=" + itemType
	}
	pages, err := r.api.DoPaged(ctx, client.Request{Path: path})
	if err != nil {
		return "", "", err
	}
	for _, p := range pages {
		var page struct {
			Value []itemInfo `json:"value"`
		}
		if err := p.JSON(&page); err != nil {
			return "", "", err
		}
		for _, it := range page.Value {
			if it.DisplayName == ref {
				return it.DisplayName, it.ID, nil
			}
		}
	}
	return "", "", fmt.Errorf("item %q (type %q): %w", ref, itemType, ErrNotFound)
}

// ItemType 实现 Resolver.ItemType。
func (r *httpResolver) ItemType(ctx context.Context, itemID, workspaceID string) (string, error) {
	it, err := r.getItem(ctx, itemID, workspaceID)
	if err != nil {
		return "", err
	}
	if it.Type == "" {
		return "", fmt.Errorf("item %q: type: %w", itemID, ErrNotFound)
	}
	return it.Type, nil
}

// ItemID 实现 Resolver.ItemID。
func (r *httpResolver) ItemID(ctx context.Context, ref, itemType, workspaceID string) (string, error) {
	_, id, err := r.Item(ctx, ref, itemType, workspaceID)
	return id, err
}

// getItem 按 ID 拉取单个条目。
func (r *httpResolver) getItem(ctx context.Context, itemID, workspaceID string) (itemInfo, error) {
	var it itemInfo
	resp, err := r.api.Do(ctx, client.Request{Path: "v1/workspaces/" + workspaceID + "/items/" + itemID})
	if err != nil {
		return it, err
	}
	if err := resp.JSON(&it); err != nil {
		return it, err
	}
	return it, nil
}

// isUUID 判断引用是不透明 ID 还是显示名称。
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
