package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"market_backend/internal/platform/metrics"
)

// Throttler は上流APIへの送信間隔を一定以上に保つためのリミッターです。
//
// AcquireSlot は呼び出し順に送信スロットを予約します。スロット同士は少なくとも
// delay だけ離れ、さらに直近の RecordSent から delay 経過するまでは払い出されません。
// 並行に呼ばれても古いタイムスタンプを読んだ複数の呼び出しが同時に通過することはありません。
type Throttler struct {
	mu       sync.Mutex
	delay    time.Duration
	lastSent time.Time // 直近の RecordSent の時刻
	next     time.Time // 次に予約可能な最早時刻

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewThrottler は新しい Throttler を生成します。delay が0以下なら待機しません。
func NewThrottler(delay time.Duration) *Throttler {
	return &Throttler{
		delay: delay,
		now:   time.Now,
		sleep: sleepContext,
	}
}

// Delay は設定された最小送信間隔を返します。
func (t *Throttler) Delay() time.Duration { return t.delay }

// AcquireSlot は送信スロットが空くまで待機します。
// 待機中に ctx が終了した場合は ctx.Err() を返します。
func (t *Throttler) AcquireSlot(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.delay <= 0 {
		return nil
	}

	t.mu.Lock()
	now := t.now()
	slot := now
	if !t.lastSent.IsZero() {
		if earliest := t.lastSent.Add(t.delay); earliest.After(slot) {
			slot = earliest
		}
	}
	if t.next.After(slot) {
		slot = t.next
	}
	t.next = slot.Add(t.delay)
	t.mu.Unlock()

	wait := slot.Sub(now)
	metrics.ThrottleWait.Observe(wait.Seconds())
	if wait <= 0 {
		return nil
	}
	slog.Debug("throttling upstream request", "wait", wait)
	if err := t.sleep(ctx, wait); err != nil {
		t.release(slot)
		return err
	}
	return nil
}

// release は待機を諦めた呼び出しが予約したスロットを返却します。
// 後続の予約が入っていない場合のみ next を巻き戻します。
func (t *Throttler) release(slot time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.next.Equal(slot.Add(t.delay)) {
		t.next = slot
	}
}

// RecordSent は送信時刻を記録します。成否に関わらず送信後に必ず呼び出してください。
func (t *Throttler) RecordSent() {
	t.mu.Lock()
	t.lastSent = t.now()
	t.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
