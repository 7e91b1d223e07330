package service

import (
	"strings"
	"time"

	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/logging"

	"github.com/google/uuid"
)

// CreateBattle spawns a fresh battle between the catalog player loadout and
// the named enemy. A zero seed picks a wall-clock seed; tests pass a fixed
// one for reproducible battles.
func CreateBattle(repo BattleRepo, cat *catalog.Catalog, playerEmail, playerName, enemyID string, seed int64, actionTimeout time.Duration) (*game.Battle, error) {
	enemy, err := cat.SpawnEnemy(enemyID)
	if err != nil {
		return nil, ErrUnknownEnemy
	}
	player := cat.SpawnPlayer()
	if strings.TrimSpace(playerName) != "" {
		player.Name = playerName
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	state := game.BattleState{
		Player: player,
		Enemy:  enemy,
		Phase:  game.PhaseSelect,
		Turn:   game.TurnState{Number: 1},
		Seed:   seed,
	}

	battleUUID := uuid.NewString()
	b := &game.Battle{
		BattleUUID:     battleUUID,
		JoinCode:       strings.ToUpper(battleUUID[:8]),
		PlayerEmail:    playerEmail,
		PlayerName:     player.Name,
		EnemyID:        enemyID,
		Status:         game.StatusInProgress,
		State:          state,
		ActionDeadline: time.Now().Add(actionTimeout),
	}
	dealHand(cat, b, 0)
	syncEnvelope(b)

	if err := repo.CreateBattle(b); err != nil {
		logging.Error("failed to create battle", err, logging.Fields{"enemy_id": enemyID})
		return nil, err
	}
	logging.Info("battle created", logging.Fields{"battle_id": b.BattleUUID, "enemy_id": enemyID})
	return b, nil
}
