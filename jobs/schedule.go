package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/logging"
	"github.com/mengeric/fabric-client-go/table"
)

// ScheduleConfigType 调度配置类型。
type ScheduleConfigType string

const (
	ScheduleCron   ScheduleConfigType = "Cron"
	ScheduleDaily  ScheduleConfigType = "Daily"
	ScheduleWeekly ScheduleConfigType = "Weekly"
)

// ParseScheduleConfigType 大小写不敏感地解析调度配置类型。
func ParseScheduleConfigType(s string) (ScheduleConfigType, error) {
	switch strings.ToLower(s) {
	case "cron":
		return ScheduleCron, nil
	case "daily":
		return ScheduleDaily, nil
	case "weekly":
		return ScheduleWeekly, nil
	}
	return "", fmt.Errorf("schedule config type %q must be one of cron/daily/weekly: %w", s, ErrInvalidArgument)
}

// 调度参数边界。
const (
	minIntervalMinutes = 1
	maxIntervalMinutes = 5270400 // 约 10 年
	maxScheduleTimes   = 100
)

// ScheduleSpec 创建/更新调度的参数。
// 三种配置类型各取所需：Cron 用 Interval，Daily 用 Times，Weekly 用 Times+Weekdays。
type ScheduleSpec struct {
	Enabled         bool
	StartDateTime   string // 起始时间；在过去则立即触发一次
	EndDateTime     string // 结束时间，须晚于起始时间
	LocalTimeZoneID string
	ConfigType      string   // cron / daily / weekly（大小写不敏感）
	Interval        int      // 分钟间隔，[1, 5270400]
	Weekdays        []string // 如 "Monday"
	Times           []string // hh:mm 时刻，至多 100 个
}

// scheduleConfigBase 三种配置共有的字段。
type scheduleConfigBase struct {
	StartDateTime   string             `json:"startDateTime"`
	EndDateTime     string             `json:"endDateTime"`
	LocalTimeZoneID string             `json:"localTimeZoneId"`
	Type            ScheduleConfigType `json:"type"`
}

type cronScheduleConfig struct {
	scheduleConfigBase
	Interval int `json:"interval"`
}

type dailyScheduleConfig struct {
	scheduleConfigBase
	Times string `json:"times"` // 时刻列表的 JSON 文本
}

type weeklyScheduleConfig struct {
	scheduleConfigBase
	Times    []string `json:"times"`
	Weekdays []string `json:"weekdays"`
}

type schedulePayload struct {
	Enabled       bool `json:"enabled"`
	Configuration any  `json:"configuration"`
}

// validateScheduleSpec 在任何网络调用之前做入参校验，返回规范化的配置类型。
func validateScheduleSpec(s ScheduleSpec) (ScheduleConfigType, error) {
	ct, err := ParseScheduleConfigType(s.ConfigType)
	if err != nil {
		return "", err
	}
	if s.Interval != 0 && (s.Interval < minIntervalMinutes || s.Interval > maxIntervalMinutes) {
		return "", fmt.Errorf("interval %d must be between %d and %d minutes: %w",
			s.Interval, minIntervalMinutes, maxIntervalMinutes, ErrInvalidArgument)
	}
	if len(s.Times) > maxScheduleTimes {
		return "", fmt.Errorf("times has %d elements, at most %d are allowed: %w",
			len(s.Times), maxScheduleTimes, ErrInvalidArgument)
	}
	return ct, nil
}

// buildSchedulePayload 按配置类型构造载荷；每个变体只携带自己合法的字段。
func buildSchedulePayload(ct ScheduleConfigType, s ScheduleSpec) schedulePayload {
	base := scheduleConfigBase{
		StartDateTime:   s.StartDateTime,
		EndDateTime:     s.EndDateTime,
		LocalTimeZoneID: s.LocalTimeZoneID,
		Type:            ct,
	}
	var cfg any
	switch ct {
	case ScheduleCron:
		cfg = cronScheduleConfig{scheduleConfigBase: base, Interval: s.Interval}
	case ScheduleDaily:
		cfg = dailyScheduleConfig{scheduleConfigBase: base, Times: jsonText(s.Times)}
	case ScheduleWeekly:
		cfg = weeklyScheduleConfig{scheduleConfigBase: base, Times: s.Times, Weekdays: s.Weekdays}
	}
	return schedulePayload{Enabled: s.Enabled, Configuration: cfg}
}

// scheduleResp 调度的线上结构。
type scheduleResp struct {
	ID              string `json:"id"`
	Enabled         bool   `json:"enabled"`
	CreatedDateTime string `json:"createdDateTime"`
	Configuration   struct {
		StartDateTime   string          `json:"startDateTime"`
		EndDateTime     string          `json:"endDateTime"`
		LocalTimeZoneID string          `json:"localTimeZoneId"`
		Type            string          `json:"type"`
		Interval        *int64          `json:"interval"`
		Weekdays        []string        `json:"weekdays"`
		Times           json.RawMessage `json:"times"`
	} `json:"configuration"`
	Owner struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"owner"`
}

// scheduleSchema 调度表的列集合。
func scheduleSchema() table.Schema {
	return table.Schema{
		{Name: "Job Schedule Id", Kind: table.KindString},
		{Name: "Enabled", Kind: table.KindBool},
		{Name: "Created Date Time", Kind: table.KindDateTime},
		{Name: "Start Date Time", Kind: table.KindDateTime},
		{Name: "End Date Time", Kind: table.KindString},
		{Name: "Local Time Zone Id", Kind: table.KindString},
		{Name: "Type", Kind: table.KindString},
		{Name: "Interval", Kind: table.KindIntNullable},
		{Name: "Weekdays", Kind: table.KindString},
		{Name: "Times", Kind: table.KindString},
		{Name: "Owner Id", Kind: table.KindString},
		{Name: "Owner Type", Kind: table.KindString},
	}
}

// scheduleCells 将线上结构映射为表格行。
// Times 无论远端回显数组还是标量，一律取其 JSON 文本，保证列类型统一。
func scheduleCells(v scheduleResp) map[string]any {
	times := "null"
	if len(v.Configuration.Times) > 0 {
		times = string(v.Configuration.Times)
	}
	return map[string]any{
		"Job Schedule Id":    v.ID,
		"Enabled":            v.Enabled,
		"Created Date Time":  v.CreatedDateTime,
		"Start Date Time":    v.Configuration.StartDateTime,
		"End Date Time":      v.Configuration.EndDateTime,
		"Local Time Zone Id": v.Configuration.LocalTimeZoneID,
		"Type":               v.Configuration.Type,
		"Interval":           v.Configuration.Interval,
		"Weekdays":           strings.Join(v.Configuration.Weekdays, ","),
		"Times":              times,
		"Owner Id":           v.Owner.ID,
		"Owner Type":         v.Owner.Type,
	}
}

// ListItemSchedules 列举条目在某作业类型下的全部调度。
func (c *Client) ListItemSchedules(ctx context.Context, ref ItemRef, jobType JobType) (*table.Table, error) {
	r, err := c.resolve(ctx, ref, false)
	if err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, client.Request{
		Path: fmt.Sprintf("v1/workspaces/%s/items/%s/jobs/%s/schedules", r.wsID, r.itemID, jobType),
	})
	if err != nil {
		return nil, err
	}
	var page struct {
		Value []scheduleResp `json:"value"`
	}
	if err := resp.JSON(&page); err != nil {
		return nil, err
	}
	t := table.New(scheduleSchema())
	for _, v := range page.Value {
		t.Append(scheduleCells(v))
	}
	return t, nil
}

// GetItemSchedule 查询单个调度，返回单行表。
func (c *Client) GetItemSchedule(ctx context.Context, ref ItemRef, jobType JobType, scheduleID string) (*table.Table, error) {
	r, err := c.resolve(ctx, ref, false)
	if err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, client.Request{
		Path: fmt.Sprintf("v1/workspaces/%s/items/%s/jobs/%s/schedules/%s", r.wsID, r.itemID, jobType, scheduleID),
	})
	if err != nil {
		return nil, err
	}
	var v scheduleResp
	if err := resp.JSON(&v); err != nil {
		return nil, err
	}
	t := table.New(scheduleSchema())
	t.Append(scheduleCells(v))
	return t, nil
}

// CreateItemSchedule 创建调度，返回新调度的 ID（取自 Location 头末段）。
// 入参校验先于寻址与网络调用，非法入参不会产生任何远端副作用。
func (c *Client) CreateItemSchedule(ctx context.Context, ref ItemRef, jobType JobType, spec ScheduleSpec) (string, error) {
	ct, err := validateScheduleSpec(spec)
	if err != nil {
		return "", err
	}
	r, err := c.resolve(ctx, ref, false)
	if err != nil {
		return "", err
	}
	resp, err := c.api.Do(ctx, client.Request{
		Method:  http.MethodPost,
		Path:    fmt.Sprintf("v1/workspaces/%s/items/%s/jobs/%s/schedules", r.wsID, r.itemID, jobType),
		Payload: buildSchedulePayload(ct, spec),
		Expect:  http.StatusCreated,
	})
	if err != nil {
		return "", err
	}
	logging.L().Info(ctx, "schedule created", "item", r.itemName, "jobType", string(jobType), "workspace", r.wsName)
	return resp.LocationID(), nil
}

// UpdateItemSchedule 以整体替换方式更新既有调度（非字段级合并）。
// 校验与载荷构造与创建完全一致。
func (c *Client) UpdateItemSchedule(ctx context.Context, ref ItemRef, jobType JobType, scheduleID string, spec ScheduleSpec) error {
	ct, err := validateScheduleSpec(spec)
	if err != nil {
		return err
	}
	r, err := c.resolve(ctx, ref, false)
	if err != nil {
		return err
	}
	_, err = c.api.Do(ctx, client.Request{
		Method:  http.MethodPatch,
		Path:    fmt.Sprintf("v1/workspaces/%s/items/%s/jobs/%s/schedules/%s", r.wsID, r.itemID, jobType, scheduleID),
		Payload: buildSchedulePayload(ct, spec),
		Expect:  http.StatusOK,
	})
	if err != nil {
		return err
	}
	logging.L().Info(ctx, "schedule updated", "item", r.itemName, "schedule", scheduleID, "workspace", r.wsName)
	return nil
}

// jsonText 将时刻列表编码为 JSON 文本。
func jsonText(times []string) string {
	b, _ := json.Marshal(times)
	return string(b)
}
