package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// ScoreSubmitter 外部提交分数的能力（HTTP 客户端、本地存储等）
// 服务端按最高分合并，所以重复或乱序提交是幂等的
type ScoreSubmitter interface {
	SubmitScore(ctx context.Context, score int) error
}

// ScoreSubmitterFunc 函数适配器
type ScoreSubmitterFunc func(ctx context.Context, score int) error

// SubmitScore 实现 ScoreSubmitter
func (f ScoreSubmitterFunc) SubmitScore(ctx context.Context, score int) error {
	return f(ctx, score)
}

// NormalizeScore 负数分数按 0 处理
func NormalizeScore(score int) int {
	if score < 0 {
		return 0
	}
	return score
}

// defaultSubmitTimeout 单次提交的超时时间
const defaultSubmitTimeout = 5 * time.Second

// ScoreReporter 以"发出即忘"的方式提交分数
//
// 提交在独立的 goroutine 中进行，失败只记录日志，不重试，
// 也不会阻塞或打乱游戏 tick。submitter 为 nil 时所有提交都是空操作。
type ScoreReporter struct {
	submitter ScoreSubmitter
	timeout   time.Duration

	wg        sync.WaitGroup
	finalOnce sync.Once
}

// NewScoreReporter 创建分数上报器
func NewScoreReporter(submitter ScoreSubmitter) *ScoreReporter {
	return &ScoreReporter{
		submitter: submitter,
		timeout:   defaultSubmitTimeout,
	}
}

// Report 异步提交当前分数，立即返回
func (r *ScoreReporter) Report(score int) {
	if r == nil || r.submitter == nil {
		return
	}
	score = NormalizeScore(score)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.submitter.SubmitScore(ctx, score); err != nil {
			log.Printf("[ScoreReporter] Warning: submit score %d failed: %v (ignored)", score, err)
		}
	}()
}

// ReportFinal 结算时的最终提交，只有第一次调用生效
// 返回 true 表示本次调用真正发起了提交
func (r *ScoreReporter) ReportFinal(score int) bool {
	if r == nil {
		return false
	}
	fired := false
	r.finalOnce.Do(func() {
		fired = true
		r.Report(score)
	})
	return fired
}

// Wait 等待所有进行中的提交结束（关闭程序或测试时使用）
func (r *ScoreReporter) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}
