package game

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
)

// 存储路径常量
const (
	scoreObject   = "score"
	scoreProperty = "best"
)

// ScoreStore 最高分存储器
//
// 基于 gdata 跨平台存储，保存格式为纯十进制整数文本，
// 不带版本号。gdataManager 为 nil 时进入降级模式：
// 读取返回 0，写入静默丢弃，游戏流程不受影响。
type ScoreStore struct {
	gdataManager *gdata.Manager
}

// NewScoreStore 创建最高分存储器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewScoreStore(gdataManager *gdata.Manager) *ScoreStore {
	return &ScoreStore{gdataManager: gdataManager}
}

// Load 读取历史最高分
//
// 降级模式、记录不存在或数据损坏时返回 0，不报错
func (s *ScoreStore) Load() int {
	if s.gdataManager == nil {
		return 0
	}

	if !s.gdataManager.ObjectPropExists(scoreObject, scoreProperty) {
		return 0
	}

	data, err := s.gdataManager.LoadObjectProp(scoreObject, scoreProperty)
	if err != nil {
		log.Printf("[ScoreStore] Warning: Failed to load best score: %v", err)
		return 0
	}

	best, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || best < 0 {
		// 数据损坏按无记录处理
		log.Printf("[ScoreStore] Warning: Corrupt best score %q, resetting to 0", string(data))
		return 0
	}

	return best
}

// Save 写入最高分
//
// 降级模式下直接返回 nil，不报错
func (s *ScoreStore) Save(best int) error {
	if s.gdataManager == nil {
		return nil
	}

	data := []byte(strconv.Itoa(best))
	if err := s.gdataManager.SaveObjectProp(scoreObject, scoreProperty, data); err != nil {
		return fmt.Errorf("failed to save best score: %w", err)
	}

	log.Printf("[ScoreStore] Best score saved: %d", best)
	return nil
}
