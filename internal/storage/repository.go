package storage

import (
	"time"

	"github.com/haedavja/hahahahgo/internal/game"
)

type Repository interface {
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	GetBattleByUUID(uuid string) (*game.Battle, error)
	FindBattleByJoinCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// ListActiveBattles returns in-progress battles for one player, most
	// recent first.
	ListActiveBattles(email string) ([]game.Battle, error)

	UpsertUser(email, uuid, name string) error
	// GetStatsByEmail returns (nil, nil) when no profile exists yet.
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	// UpdateStatsOnBattleEnd rolls a finished battle into the player's
	// aggregate counters exactly once.
	UpdateStatsOnBattleEnd(b *game.Battle, resigned bool) error

	// FindTimedOutBattles returns in-progress battles sitting in the
	// select phase whose action deadline is at or before now.
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}
