package tty

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gonewx/neonrun/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// tone 固定频率的振荡器，附带线性淡出
type tone struct {
	freq     float64
	phase    float64
	total    int
	position int
	release  int
	wave     Wave
}

// NewTone 创建一个 duration 长的音，最后 release 时间内线性淡出
func NewTone(freq float64, duration, release time.Duration, wave Wave) beep.Streamer {
	total := sampleRate.N(duration)
	rel := sampleRate.N(release)
	if rel > total {
		rel = total
	}
	return &tone{freq: freq, total: total, release: rel, wave: wave}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (t.phase - 0.5)
		}

		if remaining := t.total - t.position; t.release > 0 && remaining < t.release {
			val *= float64(remaining) / float64(t.release)
		}

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CueSound 返回提示对应的音效，没有音效的提示返回 nil
func CueSound(cue game.Cue) beep.Streamer {
	switch cue.Type {
	case game.CueCoreCollected:
		return withVolume(beep.Seq(
			NewTone(987.77, 60*time.Millisecond, 20*time.Millisecond, WaveSquare),
			NewTone(1318.51, 120*time.Millisecond, 80*time.Millisecond, WaveSquare),
		), 0.25)
	case game.CueObstacleHit:
		return withVolume(NewTone(110, 180*time.Millisecond, 120*time.Millisecond, WaveSaw), 0.4)
	case game.CueShieldAbsorbed:
		return withVolume(NewTone(660, 120*time.Millisecond, 100*time.Millisecond, WaveSine), 0.5)
	case game.CueBoostOn, game.CueShieldOn:
		return withVolume(beep.Seq(
			NewTone(523.25, 50*time.Millisecond, 10*time.Millisecond, WaveSine),
			NewTone(783.99, 90*time.Millisecond, 60*time.Millisecond, WaveSine),
		), 0.4)
	case game.CueBossStarted:
		return withVolume(beep.Seq(
			NewTone(220, 150*time.Millisecond, 30*time.Millisecond, WaveSaw),
			NewTone(185, 150*time.Millisecond, 30*time.Millisecond, WaveSaw),
			NewTone(147, 300*time.Millisecond, 200*time.Millisecond, WaveSaw),
		), 0.3)
	case game.CueBossCleared:
		return withVolume(beep.Seq(
			NewTone(523.25, 80*time.Millisecond, 20*time.Millisecond, WaveSquare),
			NewTone(659.25, 80*time.Millisecond, 20*time.Millisecond, WaveSquare),
			NewTone(783.99, 80*time.Millisecond, 20*time.Millisecond, WaveSquare),
			NewTone(1046.5, 240*time.Millisecond, 160*time.Millisecond, WaveSquare),
		), 0.25)
	case game.CueGameOver:
		return withVolume(beep.Seq(
			NewTone(392, 200*time.Millisecond, 50*time.Millisecond, WaveSine),
			NewTone(330, 200*time.Millisecond, 50*time.Millisecond, WaveSine),
			NewTone(262, 500*time.Millisecond, 400*time.Millisecond, WaveSine),
		), 0.5)
	}
	return nil
}

// Sound 通过 speaker 播放提示音
// 初始化失败时静默运行，游戏不受影响
type Sound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSound 创建音效管理器
func NewSound() *Sound {
	return &Sound{mixer: &beep.Mixer{}}
}

// Initialize 初始化音频设备
func (s *Sound) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// ToggleMute 切换静音，返回切换后是否静音
func (s *Sound) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	return s.muted
}

// Play 播放一组提示中有音效的部分
func (s *Sound) Play(cues []game.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.muted {
		return
	}
	for _, cue := range cues {
		if streamer := CueSound(cue); streamer != nil {
			speaker.Lock()
			s.mixer.Add(streamer)
			speaker.Unlock()
		}
	}
}

// Close 停止所有声音并关闭音频设备
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
	log.Printf("[Sound] closed")
}
