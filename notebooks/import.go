package notebooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/logging"
)

// ErrAlreadyExists 目标名称已存在且未允许覆盖时返回。
var ErrAlreadyExists = errors.New("notebook already exists")

const githubPrefix = "https://github.com/"

// rewriteRawURL 将 GitHub 的 blob 页面地址改写为 raw 内容地址。
// 例：https://github.com/org/repo/blob/main/nb.ipynb
//  -> https://raw.githubusercontent.com/org/repo/main/nb.ipynb
func rewriteRawURL(u string) string {
	if !strings.HasPrefix(u, githubPrefix) {
		return u
	}
	return strings.ReplaceAll("https://raw.githubusercontent.com/"+u[len(githubPrefix):], "/blob/", "/")
}

// ImportFromWeb 基于网络托管的 Jupyter 笔记本在工作区内创建笔记本。
// 行为：目标不存在时创建；已存在且 overwrite 为真时仅提示（覆盖更新尚未支持，
// 不做任何远端变更）；已存在且 overwrite 为假时返回 ErrAlreadyExists。
func (c *Client) ImportFromWeb(ctx context.Context, name, url, description, workspace string, overwrite bool) error {
	wsName, wsID, err := c.res.Workspace(ctx, workspace)
	if err != nil {
		return err
	}

	url = rewriteRawURL(url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.web.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &client.HTTPError{Method: http.MethodGet, Path: url, Status: resp.StatusCode, Body: string(body)}
	}

	existing, err := c.items.List(ctx, wsID, "Notebook")
	if err != nil {
		return err
	}
	found := false
	for _, it := range existing {
		if it.DisplayName == name {
			found = true
			break
		}
	}
	switch {
	case !found:
		return c.Create(ctx, CreateRequest{
			Name:        name,
			Content:     body,
			Description: description,
			Workspace:   wsID,
			Format:      "ipynb",
		})
	case overwrite:
		// TODO: 覆盖更新应走 UpdateDefinition 的整体替换，待平台侧确认语义后放开。
		logging.L().Info(ctx, "overwrite of notebooks is currently not supported", "notebook", name)
		return nil
	default:
		return fmt.Errorf("notebook %q in workspace %q and overwrite is false: %w", name, wsName, ErrAlreadyExists)
	}
}
