package storage

import (
	"time"

	"github.com/haedavja/hahahahgo/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) GetBattleByUUID(uuid string) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Where("battle_uuid = ?", uuid).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Where("join_code = ?", code).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) ListActiveBattles(email string) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.
		Where("player_email = ? AND status = ?", email, game.StatusInProgress).
		Order("updated_at DESC").
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	u := game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"player_name"}),
	}).Create(&u).Error
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *game.Battle, resigned bool) error {
	// Stats roll up exactly once per battle.
	if b.StatsCounted {
		return nil
	}
	var u game.User
	if err := r.db.Where("email = ?", b.PlayerEmail).First(&u).Error; err != nil {
		return err
	}
	u.BattlesPlayed++
	if b.Outcome == game.OutcomeVictory {
		u.Wins++
	}
	if b.State.Enemy != nil && b.State.Enemy.SoulBroken {
		u.SoulBreaks++
	}
	if resigned {
		u.Resignations++
	}
	if err := r.db.Save(&u).Error; err != nil {
		return err
	}
	b.StatsCounted = true
	return r.db.Save(b).Error
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.
		Where("status = ? AND phase = ? AND action_deadline <= ?", game.StatusInProgress, game.PhaseSelect, now).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}
