package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mengeric/fabric-client-go/logging"
)

// 长时操作（LRO）终态。
const (
	opSucceeded = "Succeeded"
	opFailed    = "Failed"
	opCancelled = "Cancelled"
)

// operationState 操作状态端点的响应体。
type operationState struct {
	Status string `json:"status"`
	Error  *struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	} `json:"error"`
}

// DoLRO 发起调用并等待长时操作到达终态。
// 行为：200/201 直接返回；202 按 Location 轮询操作状态（Retry-After 优先，
// 否则使用 Options.PollEvery），成功后拉取 {operation}/result 作为最终响应。
// 失败或被远端取消时返回携带操作错误信息的 error；ctx 取消时立即返回。
func (h *httpAPI) DoLRO(ctx context.Context, req Request) (*Response, error) {
	resp, err := h.call(ctx, req)
	if err != nil {
		return nil, err
	}
	switch resp.Status {
	case http.StatusOK, http.StatusCreated:
		return resp, nil
	case http.StatusAccepted:
	default:
		return nil, &HTTPError{Method: req.method(), Path: req.Path, Status: resp.Status, Body: string(resp.Body)}
	}

	op := resp.Header.Get("Location")
	if op == "" {
		return nil, fmt.Errorf("lro %s %s: missing Location header", req.method(), req.Path)
	}
	wait := retryAfter(resp.Header, h.opt.PollEvery)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		st, err := h.Do(ctx, Request{Path: op})
		if err != nil {
			return nil, err
		}
		var state operationState
		if err := st.JSON(&state); err != nil {
			return nil, fmt.Errorf("lro %s: decode state: %w", op, err)
		}
		switch state.Status {
		case opSucceeded:
			return h.Do(ctx, Request{Path: op + "/result"})
		case opFailed, opCancelled:
			if state.Error != nil {
				return nil, fmt.Errorf("lro %s: %s: %s (%s)", op, state.Status, state.Error.Message, state.Error.ErrorCode)
			}
			return nil, fmt.Errorf("lro %s: %s", op, state.Status)
		}
		logging.L().Debug(ctx, "lro still running", "operation", op, "status", state.Status)
		wait = retryAfter(st.Header, h.opt.PollEvery)
	}
}

// retryAfter 取 Retry-After 头（秒），缺失或非法时回退默认间隔。
func retryAfter(h http.Header, fallback time.Duration) time.Duration {
	if v := h.Get("Retry-After"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			return time.Duration(sec) * time.Second
		}
	}
	return fallback
}
