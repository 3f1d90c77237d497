// Package scheduler 提供按帧推进的一次性延迟回调
//
// 回调按类别管理：在同一类别中再次调度会取消该类别尚未执行的回调，
// 因此重复触发同类效果（闪烁恢复、提示隐藏等）总是以最后一次为准。
// 调度器不使用 goroutine 或系统计时器，由帧循环调用 Advance 推进。
package scheduler

import "sort"

type task struct {
	id        uint64
	category  string
	due       float64
	fn        func()
	cancelled bool
	fired     bool
}

// Deferred 延迟回调调度器
type Deferred struct {
	now        float64
	nextID     uint64
	tasks      map[uint64]*task
	byCategory map[string]uint64
}

// Handle 已调度回调的句柄
type Handle struct {
	d *Deferred
	t *task
}

// NewDeferred 创建调度器
func NewDeferred() *Deferred {
	return &Deferred{
		tasks:      make(map[uint64]*task),
		byCategory: make(map[string]uint64),
	}
}

// Schedule 在 delay 秒后执行 fn
//
// 参数：
//   - category: 回调类别，非空时取消同类别中尚未执行的回调
//   - delay: 延迟秒数，<= 0 时在下一次 Advance 执行
//   - fn: 回调函数
//
// 返回：
//   - Handle: 用于取消该回调
func (d *Deferred) Schedule(category string, delay float64, fn func()) Handle {
	if category != "" {
		d.Cancel(category)
	}

	d.nextID++
	t := &task{
		id:       d.nextID,
		category: category,
		due:      d.now + delay,
		fn:       fn,
	}
	d.tasks[t.id] = t
	if category != "" {
		d.byCategory[category] = t.id
	}
	return Handle{d: d, t: t}
}

// Cancel 取消类别中尚未执行的回调
func (d *Deferred) Cancel(category string) {
	id, ok := d.byCategory[category]
	if !ok {
		return
	}
	d.cancel(d.tasks[id])
}

// Pending 判断类别中是否有尚未执行的回调
func (d *Deferred) Pending(category string) bool {
	_, ok := d.byCategory[category]
	return ok
}

// Len 返回尚未执行的回调数量
func (d *Deferred) Len() int {
	return len(d.tasks)
}

// Clear 取消全部回调
func (d *Deferred) Clear() {
	for _, t := range d.tasks {
		d.cancel(t)
	}
}

// Advance 推进时间并执行到期回调
// 到期回调按到期时间排序执行，同时到期时按调度顺序执行。
// 回调内部新调度的任务最早在下一次 Advance 执行。
func (d *Deferred) Advance(dt float64) {
	d.now += dt

	var due []*task
	for _, t := range d.tasks {
		if t.due <= d.now {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	for _, t := range due {
		// 前面的回调可能取消或重新调度了同类别的回调，到期任务在执行前仍可被取消
		if t.cancelled {
			continue
		}
		d.remove(t.id)
		t.fired = true
		t.fn()
	}
}

func (d *Deferred) cancel(t *task) {
	if t == nil {
		return
	}
	t.cancelled = true
	d.remove(t.id)
}

func (d *Deferred) remove(id uint64) {
	t, ok := d.tasks[id]
	if !ok {
		return
	}
	delete(d.tasks, id)
	if t.category != "" && d.byCategory[t.category] == id {
		delete(d.byCategory, t.category)
	}
}

// Cancel 取消该回调，已执行或已取消时无效果
func (h Handle) Cancel() {
	if h.d == nil || h.t == nil || h.t.fired || h.t.cancelled {
		return
	}
	h.d.cancel(h.t)
}

// Pending 判断回调是否仍在等待执行
func (h Handle) Pending() bool {
	return h.t != nil && !h.t.fired && !h.t.cancelled
}
