package repo

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// DefaultTimeout 是单个仓库状态查询的默认超时。
// 防止一个无响应的文件系统（如失效的网络挂载）拖住整次运行。
const DefaultTimeout = 30 * time.Second

// AggregateOptions 控制一次状态聚合的并发与超时行为。
type AggregateOptions struct {
	// Workers 是并发查询的最大数量，<=0 时使用 CPU 核心数。
	Workers int
	// Timeout 是单个仓库查询的最长等待时间，<=0 时使用 DefaultTimeout。
	Timeout time.Duration
}

// Report 是一次聚合运行的完整结果。
// Entries 的顺序与输入仓库顺序一致，与各查询的完成顺序无关。
type Report struct {
	Entries []StatusEntry
}

// Counts 返回报告中干净、有变更、查询失败的仓库数量。
func (r Report) Counts() (clean, dirty, failed int) {
	for _, entry := range r.Entries {
		switch {
		case entry.Failed():
			failed++
		case entry.Clean():
			clean++
		default:
			dirty++
		}
	}
	return clean, dirty, failed
}

// AggregateStatus 并发查询所有仓库的状态并汇总为一份报告。
// 单个仓库的失败（路径失效、查询超时等）记录在对应条目中，
// 不影响其余仓库的结果。
func AggregateStatus(repos []Repository, opts AggregateOptions) Report {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return aggregate(repos, func(r Repository) StatusEntry {
		return r.Status()
	}, workers, timeout)
}

// aggregate 以有界并发执行查询。
// 每个仓库占用结果切片中固定下标的槽位，保证报告顺序等于输入顺序。
func aggregate(repos []Repository, query func(Repository) StatusEntry, workers int, timeout time.Duration) Report {
	entries := make([]StatusEntry, len(repos))

	var (
		wg  sync.WaitGroup // 等待所有 goroutine 完成
		pmu sync.Mutex     // 保护进度条更新
	)

	bar := newStatusProgressBar(len(repos))
	if bar != nil {
		defer func() { _ = bar.Finish() }()
	}

	// 使用信号量限制并发数
	sem := make(chan struct{}, workers)

	for i, r := range repos {
		wg.Add(1)
		go func(i int, r Repository) {
			sem <- struct{}{}        // 获取信号量
			defer func() { <-sem }() // 释放信号量
			defer wg.Done()
			defer func() {
				if bar == nil {
					return
				}
				pmu.Lock()
				_ = bar.Add(1)
				pmu.Unlock()
			}()

			entries[i] = queryWithTimeout(r, query, timeout)
		}(i, r)
	}

	wg.Wait()

	return Report{Entries: entries}
}

// queryWithTimeout 在限定时间内执行单个仓库的查询。
// 超时按该仓库的失败处理，后台查询的结果被丢弃。
func queryWithTimeout(r Repository, query func(Repository) StatusEntry, timeout time.Duration) StatusEntry {
	done := make(chan StatusEntry, 1)
	go func() {
		done <- query(r)
	}()

	select {
	case entry := <-done:
		return entry
	case <-time.After(timeout):
		return StatusEntry{Path: r.Path, Err: fmt.Errorf("status query timed out after %s: %s", timeout, r.Path)}
	}
}

// newStatusProgressBar 创建状态查询进度条。
// 仅当仓库数量 > 1 且在终端环境下才显示。
func newStatusProgressBar(total int) *progressbar.ProgressBar {
	if total <= 1 {
		return nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}

	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("querying status"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}
