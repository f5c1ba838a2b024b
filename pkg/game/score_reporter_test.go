package game

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// recordingSubmitter 记录所有提交的分数
type recordingSubmitter struct {
	mu     sync.Mutex
	scores []int
	err    error
}

func (r *recordingSubmitter) SubmitScore(ctx context.Context, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, score)
	return r.err
}

func (r *recordingSubmitter) recorded() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.scores))
	copy(out, r.scores)
	return out
}

func TestScoreReporterNormalizesNegative(t *testing.T) {
	sub := &recordingSubmitter{}
	r := NewScoreReporter(sub)

	r.Report(-30)
	r.Wait()

	got := sub.recorded()
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected [0], got %v", got)
	}
}

func TestScoreReporterSwallowsFailure(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("network down")}
	r := NewScoreReporter(sub)

	// 失败不会 panic，也不会重试
	r.Report(10)
	r.Report(20)
	r.Wait()

	if got := sub.recorded(); len(got) != 2 {
		t.Errorf("expected 2 attempts without retries, got %v", got)
	}
}

func TestScoreReporterFinalOnce(t *testing.T) {
	sub := &recordingSubmitter{}
	r := NewScoreReporter(sub)

	if !r.ReportFinal(300) {
		t.Error("first ReportFinal should submit")
	}
	if r.ReportFinal(300) {
		t.Error("second ReportFinal should be a no-op")
	}
	r.Wait()

	if got := sub.recorded(); len(got) != 1 || got[0] != 300 {
		t.Errorf("expected [300], got %v", got)
	}
}

func TestScoreReporterNilSubmitter(t *testing.T) {
	r := NewScoreReporter(nil)
	r.Report(10)
	r.Wait()

	var nilReporter *ScoreReporter
	nilReporter.Report(10)
	nilReporter.Wait()
	if nilReporter.ReportFinal(10) {
		t.Error("nil reporter should not report")
	}
}

func TestScoreSubmitterFunc(t *testing.T) {
	var got int
	f := ScoreSubmitterFunc(func(ctx context.Context, score int) error {
		got = score
		return nil
	})
	if err := f.SubmitScore(context.Background(), 55); err != nil || got != 55 {
		t.Errorf("adapter mismatch: got=%d err=%v", got, err)
	}
}
