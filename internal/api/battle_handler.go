package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/constants"
	"github.com/haedavja/hahahahgo/internal/engine"
	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/service"
	"github.com/haedavja/hahahahgo/internal/storage"

	"github.com/gin-gonic/gin"
)

type BattleHandler struct {
	repo          storage.Repository
	cat           *catalog.Catalog
	actionTimeout time.Duration
}

func NewBattleHandler(repo storage.Repository, cat *catalog.Catalog, actionTimeout time.Duration) *BattleHandler {
	return &BattleHandler{repo: repo, cat: cat, actionTimeout: actionTimeout}
}

// apiError maps service and engine sentinels to HTTP status and message.
func apiError(c *gin.Context, err error) {
	apiErrorFallback(c, err, constants.ErrFailedUpdateBattle)
}

func apiErrorFallback(c *gin.Context, err error, fallback string) {
	type mapping struct {
		target  error
		status  int
		message string
	}
	mappings := []mapping{
		{service.ErrBattleNotFound, http.StatusNotFound, constants.ErrBattleNotFound},
		{service.ErrNotYourBattle, http.StatusForbidden, constants.ErrNotYourBattle},
		{service.ErrBattleNotInProgress, http.StatusConflict, constants.ErrBattleNotInProgress},
		{service.ErrUnknownEnemy, http.StatusBadRequest, constants.ErrInvalidRequest},
		{service.ErrInvalidJoinCode, http.StatusBadRequest, constants.ErrInvalidBattleID},
		{service.ErrCardNotInHand, http.StatusBadRequest, constants.ErrUnknownCard},
		{service.ErrRedrawUsed, http.StatusConflict, constants.ErrRedrawAlreadyUsed},
		{service.ErrWrongPhase, http.StatusConflict, constants.ErrWrongPhase},
		{engine.ErrEmptySubmission, http.StatusBadRequest, constants.ErrSubmissionEmpty},
		{engine.ErrBudgetExceeded, http.StatusBadRequest, constants.ErrSubmissionOverBudget},
		{engine.ErrNothingToExecute, http.StatusConflict, constants.ErrNothingToExecute},
		{engine.ErrChoicePending, http.StatusConflict, constants.ErrChoiceRequired},
		{engine.ErrNoChoicePending, http.StatusConflict, constants.ErrNoChoicePending},
		{engine.ErrInvalidChoice, http.StatusBadRequest, constants.ErrInvalidChoice},
		{engine.ErrRewindUsed, http.StatusConflict, constants.ErrRewindAlreadyUsed},
		{engine.ErrBattleOver, http.StatusConflict, constants.ErrBattleNotInProgress},
		{engine.ErrWrongPhase, http.StatusConflict, constants.ErrWrongPhase},
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			c.JSON(m.status, gin.H{constants.JSONKeyError: m.message})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback, constants.JSONKeyDetails: err.Error()})
}

type createBattleRequest struct {
	EnemyID string `json:"enemy_id" binding:"required"`
	Seed    int64  `json:"seed"`
}

func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req createBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := service.CreateBattle(h.repo, h.cat, sessionEmail(c), sessionName(c), req.EnemyID, req.Seed, h.actionTimeout)
	if err != nil {
		apiErrorFallback(c, err, constants.ErrFailedCreateBattle)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BattleHandler) GetBattle(c *gin.Context) {
	b, err := h.repo.GetBattleByUUID(c.Param("battleID"))
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	if b.PlayerEmail != sessionEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotYourBattle})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBattleByCode resolves a battle from its shareable join code.
func (h *BattleHandler) GetBattleByCode(c *gin.Context) {
	b, err := service.FindBattleByCode(h.repo, c.Param("joinCode"), sessionEmail(c))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BattleHandler) ListBattles(c *gin.Context) {
	battles, err := h.repo.ListActiveBattles(sessionEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	c.JSON(http.StatusOK, battles)
}

type submitCardsRequest struct {
	CardIDs []string `json:"card_ids" binding:"required"`
}

func (h *BattleHandler) SubmitCards(c *gin.Context) {
	var req submitCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := service.SubmitCards(h.repo, h.cat, c.Param("battleID"), sessionEmail(c), req.CardIDs, h.actionTimeout)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BattleHandler) ReorderCards(c *gin.Context) {
	var req submitCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := service.ReorderCards(h.repo, c.Param("battleID"), sessionEmail(c), req.CardIDs)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BattleHandler) RewindTurn(c *gin.Context) {
	b, err := service.RewindTurn(h.repo, c.Param("battleID"), sessionEmail(c))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BattleHandler) RedrawHand(c *gin.Context) {
	b, err := service.RedrawHand(h.repo, h.cat, c.Param("battleID"), sessionEmail(c))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BattleHandler) ResolveTurn(c *gin.Context) {
	b, err := service.ResolveTurn(h.repo, h.cat, c.Param("battleID"), sessionEmail(c), h.actionTimeout)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BattleHandler) StepTurn(c *gin.Context) {
	b, err := service.StepTurn(h.repo, h.cat, c.Param("battleID"), sessionEmail(c), h.actionTimeout)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type chooseCardRequest struct {
	CardID string `json:"card_id" binding:"required"`
}

func (h *BattleHandler) ChooseCard(c *gin.Context) {
	var req chooseCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := service.ChooseCard(h.repo, h.cat, c.Param("battleID"), sessionEmail(c), req.CardID)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BattleHandler) Concede(c *gin.Context) {
	b, err := service.Concede(h.repo, c.Param("battleID"), sessionEmail(c))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	stats, err := h.repo.GetStatsByEmail(sessionEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	if stats == nil {
		// No battles yet: return an empty profile instead of an error.
		stats = &game.User{Email: sessionEmail(c)}
	}
	c.JSON(http.StatusOK, stats)
}
