package game

import (
	"time"

	"gorm.io/gorm"
)

// Battle is the persisted battle row. The live combat aggregate is stored
// as a JSON-serialized column so the engine stays free of persistence
// concerns; metadata columns exist for listing and lookup.
type Battle struct {
	gorm.Model
	BattleUUID string `json:"battle_uuid" gorm:"index"`
	JoinCode   string `json:"join_code" gorm:"unique"`

	PlayerEmail string `json:"player_email" gorm:"index"`
	PlayerName  string `json:"player_name"`
	EnemyID     string `json:"enemy_id"`

	Status  string  `json:"status"`
	Phase   string  `json:"phase"`
	Turn    int     `json:"turn"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`

	LastTurnSummary string `json:"last_turn_summary"`

	State BattleState `json:"state" gorm:"serializer:json"`

	// ActionDeadline bounds the select phase; battles idle past it are
	// force-finished by the timeout scanner.
	ActionDeadline time.Time `json:"action_deadline"`
	StatsCounted   bool      `json:"-"`
}

// Store battles in a dedicated table name for clarity.
func (Battle) TableName() string { return "battles" }

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID    string `gorm:"index"`
	PlayerName    string
	Email         string `gorm:"uniqueIndex"`
	BattlesPlayed int
	Wins          int
	SoulBreaks    int
	Resignations  int
}

func (User) TableName() string { return "player_profiles" }
