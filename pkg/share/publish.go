package share

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultTimeout 是单个中继的默认投递超时
const DefaultTimeout = 3 * time.Second

// Result 单个中继的投递结果
type Result struct {
	Relay   string        // 中继地址
	Err     error         // nil 表示送达
	Elapsed time.Duration // 从拨号到确认的耗时
}

// Publisher 战报投递器
//
// 对每个中继独立拨号、写入公告并等待确认，全部中继并发进行。
// 中继需回复一条任意消息或正常关闭连接作为确认；超时前两者
// 都没有发生视为投递失败。
type Publisher struct {
	timeout time.Duration
	dialer  *websocket.Dialer
}

// NewPublisher 创建投递器
// timeout 不为正时使用 DefaultTimeout
func NewPublisher(timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Publisher{
		timeout: timeout,
		dialer:  websocket.DefaultDialer,
	}
}

// Publish 把公告并发投递到所有中继，返回与 relays 同序的结果
func (p *Publisher) Publish(ctx context.Context, a *Announcement, relays []string) []Result {
	results := make([]Result, len(relays))

	var wg sync.WaitGroup
	for i, relay := range relays {
		wg.Add(1)
		go func(i int, relay string) {
			defer wg.Done()
			results[i] = p.publishOne(ctx, a, relay)
		}(i, relay)
	}
	wg.Wait()

	delivered := 0
	for _, r := range results {
		if r.Err != nil {
			log.Printf("[Share] 投递失败 %s: %v", r.Relay, r.Err)
			continue
		}
		delivered++
	}
	log.Printf("[Share] 战报投递完成: %d/%d 个中继送达", delivered, len(relays))
	return results
}

// publishOne 向单个中继投递一条公告
func (p *Publisher) publishOne(ctx context.Context, a *Announcement, relay string) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, _, err := p.dialer.DialContext(ctx, relay, nil)
	if err != nil {
		return Result{Relay: relay, Err: fmt.Errorf("dial: %w", err)}
	}
	defer conn.Close()

	deadline := time.Now().Add(p.timeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}

	if err := conn.SetWriteDeadline(deadline); err != nil {
		return Result{Relay: relay, Err: fmt.Errorf("set write deadline: %w", err)}
	}
	if err := conn.WriteJSON(a); err != nil {
		return Result{Relay: relay, Err: fmt.Errorf("write: %w", err)}
	}

	// 等待确认：一条任意消息或对端的正常关闭都算送达
	if err := conn.SetReadDeadline(deadline); err != nil {
		return Result{Relay: relay, Err: fmt.Errorf("set read deadline: %w", err)}
	}
	if _, _, err := conn.ReadMessage(); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return Result{Relay: relay, Err: fmt.Errorf("await ack: %w", err)}
		}
	}

	// 礼貌关闭，失败不影响结果
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))

	return Result{Relay: relay, Elapsed: time.Since(start)}
}

// ParseRelayList 解析逗号分隔的中继地址列表
// 空白项忽略；任何一项不是 ws/wss URL 时整体失败
func ParseRelayList(s string) ([]string, error) {
	var relays []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		u, err := url.Parse(item)
		if err != nil {
			return nil, fmt.Errorf("invalid relay URL %q: %w", item, err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return nil, fmt.Errorf("invalid relay URL %q: scheme must be ws or wss", item)
		}
		relays = append(relays, item)
	}
	return relays, nil
}
