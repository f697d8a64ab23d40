package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mengeric/fabric-client-go/config"
)

// API 定义与平台 REST 接口的交互能力，便于 gomock 打桩。
// 功能：封装单次 JSON 调用、分页调用与长时操作（LRO）调用。
type API interface {
	// Do 发起一次调用；状态码与 Expect 不符时返回 *HTTPError。
	Do(ctx context.Context, req Request) (*Response, error)
	// DoPaged 跟随 continuationToken 拉取全部分页，按序返回每页响应。
	DoPaged(ctx context.Context, req Request) ([]*Response, error)
	// DoLRO 发起调用并等待长时操作终态，返回最终结果响应。
	DoLRO(ctx context.Context, req Request) (*Response, error)
}

// Request 一次 API 调用的描述。
type Request struct {
	Method  string // 留空默认 GET
	Path    string // 相对路径，如 v1/workspaces/{id}/items；也接受绝对 URL
	Payload any    // 非 nil 时编码为 JSON 请求体
	Expect  int    // 期望状态码，留空默认 200
}

// Response 一次 API 调用的结果。
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON 将响应体解码到 out。
func (r *Response) JSON(out any) error { return json.Unmarshal(r.Body, out) }

// LocationID 取 Location 响应头的末段路径，即新建资源的 ID。
func (r *Response) LocationID() string {
	loc := strings.TrimRight(r.Header.Get("Location"), "/")
	if loc == "" {
		return ""
	}
	return loc[strings.LastIndex(loc, "/")+1:]
}

// HTTPError 远端返回非期望状态码时的错误，携带状态码与响应体便于排查。
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s => %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Options 传输层运行参数。
type Options struct {
	BaseURL   string        // API 根地址
	Token     string        // Bearer Token，留空不携带认证头
	UserAgent string        // 请求 User-Agent
	Timeout   time.Duration // 单次请求超时
	PollEvery time.Duration // LRO 轮询间隔下限（Retry-After 优先）
}

// withDefaults 填充默认值。
func (o *Options) withDefaults() {
	if o.BaseURL == "" {
		o.BaseURL = "https://api.fabric.microsoft.com"
	}
	if o.UserAgent == "" {
		o.UserAgent = "fabric-client-go"
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.PollEvery <= 0 {
		o.PollEvery = 5 * time.Second
	}
}

// OptionsFromConfig 由配置构造传输层参数。
func OptionsFromConfig(c config.Config) Options {
	return Options{
		BaseURL:   c.BaseURL,
		Token:     c.Token,
		UserAgent: c.UserAgent,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
		PollEvery: time.Duration(c.PollSeconds) * time.Second,
	}
}

// httpAPI 实现 API。
type httpAPI struct {
	opt Options
	hc  *http.Client
}

// NewHTTP 构造 HTTP 实现。
func NewHTTP(opt Options) API {
	opt.withDefaults()
	return &httpAPI{opt: opt, hc: &http.Client{Timeout: opt.Timeout}}
}

// Do 发起一次调用并校验状态码。
func (h *httpAPI) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := h.call(ctx, req)
	if err != nil {
		return nil, err
	}
	expect := req.Expect
	if expect == 0 {
		expect = http.StatusOK
	}
	if resp.Status != expect {
		return nil, &HTTPError{Method: req.method(), Path: req.Path, Status: resp.Status, Body: string(resp.Body)}
	}
	return resp, nil
}

// DoPaged 跟随 continuationToken 拉取全部分页。
func (h *httpAPI) DoPaged(ctx context.Context, req Request) ([]*Response, error) {
	var out []*Response
	path := req.Path
	for {
		r := req
		r.Path = path
		resp, err := h.Do(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
		var env struct {
			ContinuationToken *string `json:"continuationToken"`
		}
		if err := json.Unmarshal(resp.Body, &env); err != nil || env.ContinuationToken == nil || *env.ContinuationToken == "" {
			return out, nil
		}
		path = withQuery(req.Path, "continuationToken", *env.ContinuationToken)
	}
}

// call 执行请求并完整读取响应体，不做状态码校验。
func (h *httpAPI) call(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if req.Payload != nil {
		b, err := json.Marshal(req.Payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	hr, err := http.NewRequestWithContext(ctx, req.method(), h.buildURL(req.Path), body)
	if err != nil {
		return nil, err
	}
	if req.Payload != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	if h.opt.Token != "" {
		hr.Header.Set("Authorization", "Bearer "+h.opt.Token)
	}
	hr.Header.Set("User-Agent", h.opt.UserAgent)
	res, err := h.hc.Do(hr)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: res.StatusCode, Header: res.Header, Body: b}, nil
}

// buildURL 拼接根地址与相对路径；绝对 URL（LRO Location）原样使用。
func (h *httpAPI) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(h.opt.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// withQuery 在路径上追加一个查询参数。
func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}
