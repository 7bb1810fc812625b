// Package share 实现战报分享：对一局游戏的结果生成签名公告，
// 并发投递到若干 websocket 中继。
//
// 投递是尽力而为的：任何失败只记录日志，不影响游戏本身。
// 公告使用一次性 ed25519 密钥签名，中继方可验证公告未被篡改，
// 但密钥不与任何长期身份绑定。
package share

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"time"
)

// 公告的结局标签
const (
	OutcomeVictory  = "victory"
	OutcomeGameOver = "gameover"
)

// Announcement 一条战报公告
// 字段随 JSON 投递给中继；签名覆盖 signingPayload 拼出的规范串
type Announcement struct {
	Game      string `json:"game"`      // 固定为 "cavestrike"
	Message   string `json:"message"`   // 人类可读的战报文本
	Outcome   string `json:"outcome"`   // victory / gameover
	Score     int    `json:"score"`     // 本局得分
	BestScore int    `json:"bestScore"` // 历史最高分
	Stage     int    `json:"stage"`     // 结束时的关卡号（从 1 起）
	SentAt    string `json:"sentAt"`    // RFC3339 时间戳
	PubKey    string `json:"pubkey"`    // hex 编码的 ed25519 公钥
	Sig       string `json:"sig"`       // hex 编码的签名
}

// NewAnnouncement 生成一条已签名的战报公告
//
// 每条公告生成一对一次性 ed25519 密钥，公钥随公告一起投递。
//
// 参数：
//   - outcome: 结局标签（OutcomeVictory / OutcomeGameOver）
//   - score, bestScore: 本局得分与历史最高分
//   - stageIndex: 结束时的关卡索引（从 0 起，公告中转为 1 起）
//   - now: 公告时间，用于时间戳与签名
func NewAnnouncement(outcome string, score, bestScore, stageIndex int, now time.Time) (*Announcement, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("generate announcement key: %w", err)
	}

	a := &Announcement{
		Game:      "cavestrike",
		Outcome:   outcome,
		Score:     score,
		BestScore: bestScore,
		Stage:     stageIndex + 1,
		SentAt:    now.UTC().Format(time.RFC3339),
		PubKey:    hex.EncodeToString(pub),
	}

	switch outcome {
	case OutcomeVictory:
		a.Message = fmt.Sprintf("CAVE STRIKE cleared all stages, score %d (best %d)", score, bestScore)
	default:
		a.Message = fmt.Sprintf("CAVE STRIKE run ended at stage %d, score %d (best %d)", a.Stage, score, bestScore)
	}

	sig := ed25519.Sign(priv, a.signingPayload())
	a.Sig = hex.EncodeToString(sig)
	return a, nil
}

// signingPayload 拼出签名覆盖的规范串
// 公告中除签名外所有有意义的字段都参与，顺序固定
func (a *Announcement) signingPayload() []byte {
	return []byte(fmt.Sprintf("%s|%s|%s|%d|%d|%d|%s",
		a.Game, a.Outcome, a.Message, a.Score, a.BestScore, a.Stage, a.SentAt))
}

// Verify 校验公告签名
// 公钥或签名不是合法 hex、长度不符或校验失败时返回 false
func (a *Announcement) Verify() bool {
	pub, err := hex.DecodeString(a.PubKey)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := hex.DecodeString(a.Sig)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), a.signingPayload(), sig)
}
