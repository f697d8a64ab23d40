package jobs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/logging"
	"github.com/mengeric/fabric-client-go/resolver"
	"github.com/mengeric/fabric-client-go/table"
)

// ErrInvalidArgument 入参非法时返回（任何网络调用之前），可用 errors.Is 判断。
var ErrInvalidArgument = errors.New("invalid argument")

// JobType 作业类型。
type JobType string

const (
	JobTypePipeline    JobType = "Pipeline"
	JobTypeRunNotebook JobType = "RunNotebook"
	JobTypeCopyJob     JobType = "CopyJob"
	JobTypeSparkJob    JobType = "sparkjob"
)

// ParseJobType 大小写不敏感地解析作业类型。
func ParseJobType(s string) (JobType, error) {
	switch strings.ToLower(s) {
	case "pipeline":
		return JobTypePipeline, nil
	case "runnotebook":
		return JobTypeRunNotebook, nil
	case "copyjob":
		return JobTypeCopyJob, nil
	case "sparkjob":
		return JobTypeSparkJob, nil
	}
	return "", fmt.Errorf("job type %q: %w", s, ErrInvalidArgument)
}

// ItemRef 定位一个条目：名称或 ID，加可选的类型与工作区。
type ItemRef struct {
	Item      string // 条目名称或 ID
	Type      string // 按名称寻址时建议给出；留空则按 ID 反查
	Workspace string // 名称或 ID，留空使用默认工作区
}

// Client 作业 Facade：实例的列举/查询/触发/取消与调度的增删查改。
type Client struct {
	api client.API
	res resolver.Resolver
}

// New 构造作业客户端。
func New(api client.API, res resolver.Resolver) *Client {
	return &Client{api: api, res: res}
}

// resolved 一次寻址的完整结果。
type resolved struct {
	wsName, wsID     string
	itemName, itemID string
	itemType         string
}

// resolve 解析工作区与条目；needType 为真且未给出类型时从条目目录反查。
func (c *Client) resolve(ctx context.Context, ref ItemRef, needType bool) (resolved, error) {
	var out resolved
	wsName, wsID, err := c.res.Workspace(ctx, ref.Workspace)
	if err != nil {
		return out, err
	}
	itemName, itemID, err := c.res.Item(ctx, ref.Item, ref.Type, wsID)
	if err != nil {
		return out, err
	}
	itemType := ref.Type
	if itemType == "" && needType {
		itemType, err = c.res.ItemType(ctx, itemID, wsID)
		if err != nil {
			return out, err
		}
	}
	return resolved{wsName: wsName, wsID: wsID, itemName: itemName, itemID: itemID, itemType: itemType}, nil
}

// jobInstance 作业实例的线上结构。
type jobInstance struct {
	ID             string `json:"id"`
	ItemID         string `json:"itemId"`
	JobType        string `json:"jobType"`
	InvokeType     string `json:"invokeType"`
	Status         string `json:"status"`
	RootActivityID string `json:"rootActivityId"`
	StartTimeUTC   string `json:"startTimeUtc"`
	EndTimeUTC     string `json:"endTimeUtc"`
	FailureReason  *struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	} `json:"failureReason"`
}

// instanceSchema 作业实例表的列集合。
func instanceSchema() table.Schema {
	return table.Schema{
		{Name: "Job Instance Id", Kind: table.KindString},
		{Name: "Item Name", Kind: table.KindString},
		{Name: "Item Id", Kind: table.KindString},
		{Name: "Item Type", Kind: table.KindString},
		{Name: "Job Type", Kind: table.KindString},
		{Name: "Invoke Type", Kind: table.KindString},
		{Name: "Status", Kind: table.KindString},
		{Name: "Root Activity Id", Kind: table.KindString},
		{Name: "Start Time UTC", Kind: table.KindDateTime},
		{Name: "End Time UTC", Kind: table.KindString},
		{Name: "Error Message", Kind: table.KindString},
	}
}

// instanceCells 将线上结构映射为表格行；缺失的失败原因映射为空串而非空值。
func instanceCells(v jobInstance, itemName, itemType string) map[string]any {
	msg := ""
	if v.FailureReason != nil {
		msg = v.FailureReason.Message
	}
	return map[string]any{
		"Job Instance Id":  v.ID,
		"Item Name":        itemName,
		"Item Id":          v.ItemID,
		"Item Type":        itemType,
		"Job Type":         v.JobType,
		"Invoke Type":      v.InvokeType,
		"Status":           v.Status,
		"Root Activity Id": v.RootActivityID,
		"Start Time UTC":   v.StartTimeUTC,
		"End Time UTC":     v.EndTimeUTC,
		"Error Message":    msg,
	}
}

// ListJobInstances 列举条目的全部作业实例（分页全部拉取）。
// 远端返回空集合时得到零行但列集合完整的表。
func (c *Client) ListJobInstances(ctx context.Context, ref ItemRef) (*table.Table, error) {
	r, err := c.resolve(ctx, ref, true)
	if err != nil {
		return nil, err
	}
	t := table.New(instanceSchema())
	pages, err := c.api.DoPaged(ctx, client.Request{
		Path: fmt.Sprintf("v1/workspaces/%s/items/%s/jobs/instances", r.wsID, r.itemID),
	})
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		var page struct {
			Value []jobInstance `json:"value"`
		}
		if err := p.JSON(&page); err != nil {
			return nil, err
		}
		for _, v := range page.Value {
			t.Append(instanceCells(v, r.itemName, r.itemType))
		}
	}
	return t, nil
}

// GetJobInstance 查询单个作业实例，返回单行表。
func (c *Client) GetJobInstance(ctx context.Context, ref ItemRef, instanceID string) (*table.Table, error) {
	r, err := c.resolve(ctx, ref, true)
	if err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, client.Request{
		Path: fmt.Sprintf("v1/workspaces/%s/items/%s/jobs/instances/%s", r.wsID, r.itemID, instanceID),
	})
	if err != nil {
		return nil, err
	}
	var v jobInstance
	if err := resp.JSON(&v); err != nil {
		return nil, err
	}
	t := table.New(instanceSchema())
	t.Append(instanceCells(v, r.itemName, r.itemType))
	return t, nil
}

// RunOnDemandItemJob 触发一次按需作业，返回新实例的 ID。
// 说明：远端以 202 应答且响应体为空，实例 ID 只能取自 Location 头的末段。
func (c *Client) RunOnDemandItemJob(ctx context.Context, ref ItemRef, jobType JobType) (string, error) {
	r, err := c.resolve(ctx, ref, true)
	if err != nil {
		return "", err
	}
	resp, err := c.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("v1/workspaces/%s/items/%s/jobs/instances?jobType=%s", r.wsID, r.itemID, jobType),
		Expect: http.StatusAccepted,
	})
	if err != nil {
		return "", err
	}
	logging.L().Info(ctx, "on-demand job started",
		"item", r.itemName, "itemType", strings.ToLower(r.itemType), "workspace", r.wsName)
	return resp.LocationID(), nil
}

// CancelJobInstance 请求取消一个作业实例。
// 说明：这只是提交取消请求，实例状态由远端调度器异步迁移；
// 调用方需轮询 GetJobInstance 观察终态。
func (c *Client) CancelJobInstance(ctx context.Context, ref ItemRef, instanceID string) error {
	r, err := c.resolve(ctx, ref, false)
	if err != nil {
		return err
	}
	_, err = c.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("v1/workspaces/%s/items/%s/jobs/instances/%s/cancel", r.wsID, r.itemID, instanceID),
		Expect: http.StatusAccepted,
	})
	if err != nil {
		return err
	}
	logging.L().Info(ctx, "job instance cancel requested", "item", r.itemName, "instance", instanceID)
	return nil
}
